package mapdata

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"AbyssVision/shared/util"
)

// MarkerColorCount é o tamanho da paleta de cores dos marcadores (índices 0..7).
const MarkerColorCount = 8

// MarkerModel representa um marcador criado pelo usuário, persistido no banco.
// Marcadores são independentes da máscara de exploração.
type MarkerModel struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Label     string  `json:"label"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Z         float32 `json:"z"`
	Color     int     `json:"color"`
	Layer     string  `json:"layer"`
	CreatedAt int64   `json:"createdAt"`
}

// Position retorna a posição 3D do marcador.
func (m *MarkerModel) Position() util.Vector3 {
	return util.Vector3{X: m.X, Y: m.Y, Z: m.Z}
}

// NewMarker cria um marcador na posição indicada, pertencente à camada dada.
func NewMarker(label string, pos util.Vector3, color int, layer Layer) MarkerModel {
	if color < 0 || color >= MarkerColorCount {
		color = 0
	}
	return MarkerModel{
		ID:        uuid.NewString(),
		Label:     label,
		X:         pos.X,
		Y:         pos.Y,
		Z:         pos.Z,
		Color:     color,
		Layer:     layer.Key(),
		CreatedAt: time.Now().UnixMilli(),
	}
}

// Markers retorna todos os marcadores persistidos.
func (d *Database) Markers() []MarkerModel {
	var out []MarkerModel
	if err := d.DB.Order("created_at").Find(&out).Error; err != nil {
		log.Printf("[Persistence] ERRO ao carregar marcadores: %v", err)
		return nil
	}
	return out
}

// SaveMarker cria ou atualiza um marcador (upsert pelo ID).
func (d *Database) SaveMarker(m MarkerModel) error {
	if err := d.DB.Save(&m).Error; err != nil {
		return fmt.Errorf("falha ao salvar marcador %s: %w", m.ID, err)
	}
	return nil
}

// DeleteMarker remove um marcador pelo ID.
func (d *Database) DeleteMarker(id string) error {
	if err := d.DB.Delete(&MarkerModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("falha ao remover marcador %s: %w", id, err)
	}
	return nil
}

// DeleteAllMarkers remove todos os marcadores.
func (d *Database) DeleteAllMarkers() error {
	if err := d.DB.Where("1 = 1").Delete(&MarkerModel{}).Error; err != nil {
		return fmt.Errorf("falha ao remover marcadores: %w", err)
	}
	return nil
}

// ReplaceMarkers substitui a coleção inteira em uma transação (usado pelo
// import de backup; substituição, nunca mesclagem).
func (d *Database) ReplaceMarkers(markers []MarkerModel) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&MarkerModel{}).Error; err != nil {
			return err
		}
		for i := range markers {
			if err := tx.Create(&markers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
