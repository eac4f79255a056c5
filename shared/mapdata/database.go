package mapdata

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SettingModel armazena uma configuração chave/valor no banco.
type SettingModel struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Chaves das configurações interpretadas pelo núcleo.
const (
	settingFogEnabled    = "FogOfWarEnabled"
	settingDetailedMap   = "UseDetailedMap"
	settingLayerOverride = "LayerOverride"
)

// Database guarda marcadores e configurações do usuário em SQLite (GORM).
// As máscaras de exploração ficam fora do banco, em arquivos binários por
// camada (ver FogStore), pelo formato de compatibilidade.
type Database struct {
	DB *gorm.DB
}

// OpenDatabase abre (ou cria) o banco SQLite no diretório de dados e roda
// as migrações.
func OpenDatabase(dir string) (*Database, error) {
	dbPath := filepath.Join(dir, "abyssvision.db")

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&SettingModel{}, &MarkerModel{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	log.Printf("[Persistence] Banco de dados SQLite aberto: %s", dbPath)
	return &Database{DB: db}, nil
}

// openDatabaseAt abre o banco em um caminho arbitrário (usado nos testes).
func openDatabaseAt(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&SettingModel{}, &MarkerModel{}); err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

// getSetting lê uma configuração crua; retorna fallback se ausente.
func (d *Database) getSetting(key, fallback string) string {
	var model SettingModel
	if err := d.DB.First(&model, "key = ?", key).Error; err != nil {
		return fallback
	}
	return model.Value
}

// setSetting grava uma configuração (upsert).
func (d *Database) setSetting(key, value string) {
	if err := d.DB.Save(&SettingModel{Key: key, Value: value}).Error; err != nil {
		log.Printf("[Persistence] ERRO ao salvar configuração %s: %v", key, err)
	}
}

// FogEnabled indica se a névoa de guerra está habilitada (padrão: true).
func (d *Database) FogEnabled() bool {
	v, err := strconv.ParseBool(d.getSetting(settingFogEnabled, "true"))
	return err == nil && v
}

// SetFogEnabled persiste a habilitação da névoa.
func (d *Database) SetFogEnabled(enabled bool) {
	d.setSetting(settingFogEnabled, strconv.FormatBool(enabled))
}

// DetailedMap indica se o fundo detalhado deve ser usado (padrão: false).
// O núcleo não interpreta o valor além de repassá-lo ao renderer.
func (d *Database) DetailedMap() bool {
	v, err := strconv.ParseBool(d.getSetting(settingDetailedMap, "false"))
	return err == nil && v
}

// SetDetailedMap persiste a escolha de fundo.
func (d *Database) SetDetailedMap(detailed bool) {
	d.setSetting(settingDetailedMap, strconv.FormatBool(detailed))
}

// LayerOverride retorna a camada fixada manualmente, ou nil quando a seleção
// está em modo automático (classificação por bioma).
func (d *Database) LayerOverride() *Layer {
	name := d.getSetting(settingLayerOverride, "")
	if name == "" {
		return nil
	}
	layer, ok := ParseLayer(name)
	if !ok {
		return nil
	}
	return &layer
}

// SetLayerOverride fixa manualmente a camada ativa; nil volta ao automático.
func (d *Database) SetLayerOverride(layer *Layer) {
	if layer == nil {
		d.setSetting(settingLayerOverride, "")
		return
	}
	d.setSetting(settingLayerOverride, layer.Key())
}
