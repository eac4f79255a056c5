package mapdata

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"AbyssVision/shared/util"
)

// BackupVersion é a versão atual do formato do documento de backup.
const BackupVersion = 1

// BackupSettings é o snapshot das configurações dentro do documento.
type BackupSettings struct {
	FogOfWarEnabled bool   `json:"fogOfWarEnabled"`
	UseDetailedMap  bool   `json:"useDetailedMap"`
	LayerOverride   string `json:"layerOverride,omitempty"`
}

// BackupDocument é o snapshot portátil do estado completo do companion:
// configurações, marcadores e a máscara de exploração de cada camada.
type BackupDocument struct {
	Version       int                        `json:"version"`
	Timestamp     int64                      `json:"timestamp"`
	Settings      BackupSettings             `json:"settings"`
	CustomMarkers []MarkerModel              `json:"customMarkers"`
	FogOfWarData  map[string][]util.ChunkKey `json:"fogOfWarData"`
}

// Backup exporta e importa o documento completo. O import substitui (nunca
// mescla) configurações, marcadores e máscaras.
type Backup struct {
	db      *Database
	store   *FogStore
	session *FogSession
}

// NewBackup cria o codec de backup sobre o estado atual.
func NewBackup(db *Database, store *FogStore, session *FogSession) *Backup {
	return &Backup{db: db, store: store, session: session}
}

// Export monta o documento com o estado atual. Camadas sem exploração são
// omitidas para manter o documento compacto.
func (b *Backup) Export() *BackupDocument {
	doc := &BackupDocument{
		Version:       BackupVersion,
		Timestamp:     time.Now().UnixMilli(),
		CustomMarkers: b.db.Markers(),
		FogOfWarData:  make(map[string][]util.ChunkKey),
	}

	doc.Settings = BackupSettings{
		FogOfWarEnabled: b.db.FogEnabled(),
		UseDetailedMap:  b.db.DetailedMap(),
	}
	if override := b.db.LayerOverride(); override != nil {
		doc.Settings.LayerOverride = override.Key()
	}

	for _, layer := range AllLayers {
		mask := b.session.Mask(layer)
		if len(mask) == 0 {
			continue
		}
		doc.FogOfWarData[layer.Key()] = mask.Keys()
	}
	return doc
}

// ExportJSON serializa o documento de backup.
func (b *Backup) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(b.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar backup: %w", err)
	}
	return data, nil
}

// ImportJSON restaura o estado a partir de um documento serializado.
// Em entrada estruturalmente inválida (JSON malformado, versão errada) nada
// é mutado. Nomes de camada desconhecidos dentro do documento são pulados
// individualmente, para tolerância entre versões.
func (b *Backup) ImportJSON(data []byte) error {
	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("documento de backup inválido: %w", err)
	}
	return b.Import(&doc)
}

// Import aplica o documento: substitui configurações, a coleção inteira de
// marcadores e a máscara de cada camada (limpando camadas ausentes do
// documento). A sessão é recarregada do disco ao final.
func (b *Backup) Import(doc *BackupDocument) error {
	if doc.Version != BackupVersion {
		return fmt.Errorf("versão de backup não suportada: %d", doc.Version)
	}

	// Toma posse exclusiva do armazenamento: nenhum save de tick em voo
	// pode intercalar com a substituição abaixo
	if b.session != nil {
		b.session.Flush()
	}

	// Configurações
	b.db.SetFogEnabled(doc.Settings.FogOfWarEnabled)
	b.db.SetDetailedMap(doc.Settings.UseDetailedMap)
	if layer, ok := ParseLayer(doc.Settings.LayerOverride); ok {
		b.db.SetLayerOverride(&layer)
	} else {
		b.db.SetLayerOverride(nil)
	}

	// Marcadores: substituição completa, em transação
	if err := b.db.ReplaceMarkers(doc.CustomMarkers); err != nil {
		return fmt.Errorf("falha ao restaurar marcadores: %w", err)
	}

	// Máscaras: cada camada recebe o conteúdo do documento; camadas ausentes
	// são limpas
	for _, layer := range AllLayers {
		keys, ok := doc.FogOfWarData[layer.Key()]
		if !ok {
			if err := b.store.Clear(layer); err != nil {
				log.Printf("[Backup] ERRO ao limpar camada %s: %v", layer.Key(), err)
			}
			continue
		}
		set := make(ChunkSet, len(keys))
		for _, k := range keys {
			set.Add(k)
		}
		if err := b.store.Save(layer, set); err != nil {
			return fmt.Errorf("falha ao restaurar camada %s: %w", layer.Key(), err)
		}
	}

	for name := range doc.FogOfWarData {
		if _, ok := ParseLayer(name); !ok {
			log.Printf("[Backup] Camada desconhecida ignorada no import: %s", name)
		}
	}

	if b.session != nil {
		b.session.ReloadAll()
	}
	log.Printf("[Backup] Import concluído (%d marcadores, %d camadas)",
		len(doc.CustomMarkers), len(doc.FogOfWarData))
	return nil
}
