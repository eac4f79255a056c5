package mapdata

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"AbyssVision/shared/util"
)

// legacyFogFile é o arquivo único da geração anterior (antes das camadas).
// Seu conteúdo é migrado para a máscara da Superfície na primeira carga.
const legacyFogFile = "fog_of_war.dat"

// FogStore persiste a máscara de exploração de cada camada em disco.
// Formato: sequência de inteiros de 8 bytes little-endian, cada um uma
// ChunkKey empacotada. Ausência do arquivo equivale a máscara vazia.
type FogStore struct {
	dir string
}

// NewFogStore cria o armazenamento no diretório indicado (criado se preciso).
func NewFogStore(dir string) (*FogStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de dados: %w", err)
	}
	return &FogStore{dir: dir}, nil
}

// layerPath retorna o caminho do arquivo de máscara da camada.
func (fs *FogStore) layerPath(layer Layer) string {
	return filepath.Join(fs.dir, fmt.Sprintf("fog_%s.dat", layer.Key()))
}

// Load carrega a máscara persistida da camada. Dados ausentes ou corrompidos
// são tratados como "nada explorado ainda", nunca como erro fatal.
func (fs *FogStore) Load(layer Layer) ChunkSet {
	if layer == LayerSurface {
		fs.migrateLegacy()
	}

	data, err := os.ReadFile(fs.layerPath(layer))
	if err != nil {
		return NewChunkSet()
	}
	return decodeChunkSet(data)
}

// Save persiste a máscara da camada, sobrescrevendo o conteúdo anterior.
// A escrita usa arquivo temporário + rename para nunca expor escrita parcial.
func (fs *FogStore) Save(layer Layer, set ChunkSet) error {
	data := encodeChunkSet(set)

	tmp := fs.layerPath(layer) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("falha ao gravar máscara de %s: %w", layer.Key(), err)
	}
	if err := os.Rename(tmp, fs.layerPath(layer)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("falha ao substituir máscara de %s: %w", layer.Key(), err)
	}
	return nil
}

// Clear apaga a máscara persistida da camada. Load subsequente retorna vazio.
func (fs *FogStore) Clear(layer Layer) error {
	err := os.Remove(fs.layerPath(layer))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("falha ao limpar máscara de %s: %w", layer.Key(), err)
	}
	return nil
}

// migrateLegacy consome o arquivo único da geração pré-camadas, uma vez só:
// se ele existe e a Superfície ainda não tem dados, seu conteúdo vira a máscara
// inicial da Superfície e o arquivo legado é removido. Chamadas repetidas após
// a migração são no-ops (o arquivo legado já não existe).
func (fs *FogStore) migrateLegacy() {
	legacyPath := filepath.Join(fs.dir, legacyFogFile)
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return
	}

	if _, err := os.Stat(fs.layerPath(LayerSurface)); err == nil {
		// A Superfície já tem dados próprios; não há o que migrar.
		return
	}

	set := decodeChunkSet(data)
	if err := fs.Save(LayerSurface, set); err != nil {
		log.Printf("[Persistence] ERRO ao migrar máscara legada: %v", err)
		return
	}
	os.Remove(legacyPath)
	log.Printf("[Persistence] Máscara legada migrada para a Superfície (%d chunks)", len(set))
}

// encodeChunkSet serializa o conjunto como inteiros de 8 bytes little-endian,
// sem garantia de ordem.
func encodeChunkSet(set ChunkSet) []byte {
	buf := make([]byte, 0, len(set)*8)
	var scratch [8]byte
	for k := range set {
		binary.LittleEndian.PutUint64(scratch[:], uint64(k))
		buf = append(buf, scratch[:]...)
	}
	return buf
}

// decodeChunkSet lê inteiros de 8 bytes consecutivos. Bytes truncados ao final
// (arquivo corrompido) são ignorados silenciosamente.
func decodeChunkSet(data []byte) ChunkSet {
	set := make(ChunkSet, len(data)/8)
	for i := 0; i+8 <= len(data); i += 8 {
		set[util.ChunkKey(binary.LittleEndian.Uint64(data[i:]))] = struct{}{}
	}
	return set
}
