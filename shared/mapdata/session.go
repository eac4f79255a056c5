package mapdata

import (
	"log"
	"sync"

	"AbyssVision/shared/util"
)

// RevealRadius é o raio de visibilidade em tempo real ao redor da posição
// atual do jogador, em metros. É independente dos chunks persistidos: dá
// retorno visual imediato antes do save assíncrono completar.
const RevealRadius float32 = 100.0

// FogSession orquestra a exploração por tick: calcula o chunk sob o jogador,
// funde na máscara viva da camada ativa e dispara a persistência assíncrona.
// É o único componente que muta as máscaras (ticks e resets explícitos).
type FogSession struct {
	mu    sync.RWMutex
	store *FogStore
	masks map[Layer]ChunkSet

	saveCh  chan Layer
	pending sync.WaitGroup
	wg      sync.WaitGroup
	closed  bool
}

// NewFogSession carrega as máscaras persistidas de todas as camadas e inicia
// o worker de persistência. O worker roda fora do loop de polling para que a
// latência de disco nunca atrase o próximo fetch.
func NewFogSession(store *FogStore) *FogSession {
	s := &FogSession{
		store:  store,
		masks:  make(map[Layer]ChunkSet, len(AllLayers)),
		saveCh: make(chan Layer, len(AllLayers)*4),
	}
	for _, layer := range AllLayers {
		s.masks[layer] = store.Load(layer)
	}

	s.wg.Add(1)
	go s.saveLoop()
	return s
}

// Close encerra o worker de persistência, drenando os saves pendentes.
func (s *FogSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.saveCh)
	s.wg.Wait()
}

// saveLoop consome pedidos de save e persiste um snapshot da máscara.
// Falha de escrita é apenas logada: a máscara em memória continua sendo a
// autoridade durante a sessão.
func (s *FogSession) saveLoop() {
	defer s.wg.Done()
	for layer := range s.saveCh {
		mask := s.Mask(layer)
		if err := s.store.Save(layer, mask); err != nil {
			log.Printf("[Fog] ERRO ao persistir máscara de %s: %v", layer.Key(), err)
		}
		s.pending.Done()
	}
}

// requestSave enfileira a persistência da camada sem bloquear o tick.
// O RLock cobre o envio para que Close não feche o canal no meio.
func (s *FogSession) requestSave(layer Layer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	s.pending.Add(1)
	select {
	case s.saveCh <- layer:
	default:
		// Fila cheia: um save da camada já está pendente e vai capturar
		// o estado mais recente quando rodar.
		s.pending.Done()
	}
}

// Flush bloqueia até todos os saves enfileirados aterrissarem em disco.
// Usado pelo import de backup para tomar posse exclusiva do armazenamento
// sem intercalar com a persistência de um tick em voo.
func (s *FogSession) Flush() {
	s.pending.Wait()
}

// OnTick processa um tick de polling: marca o chunk sob a posição como
// visitado na camada ativa. Retorna true se a máscara cresceu.
// Com enabled=false é um no-op. Trocar de camada nunca muta máscara alguma:
// a máscara de uma camada só muda enquanto ela está ativa e o jogador se move.
func (s *FogSession) OnTick(layer Layer, pos util.Vector3, enabled bool) bool {
	if !enabled {
		return false
	}

	key := util.PackChunkKey(util.WorldToChunk(pos.X, pos.Z))

	s.mu.Lock()
	mask := s.masks[layer]
	if mask.Contains(key) {
		s.mu.Unlock()
		return false
	}
	// Substituição atômica por união: leitores concorrentes observam a
	// máscara pré- ou pós-tick, nunca uma atualização parcial.
	next := mask.Clone()
	next.Add(key)
	s.masks[layer] = next
	s.mu.Unlock()

	s.requestSave(layer)
	return true
}

// Mask retorna a máscara viva da camada. O conjunto retornado é imutável do
// ponto de vista do chamador (ticks substituem o mapa inteiro, nunca mutam o
// publicado), então é seguro iterar durante a renderização.
func (s *FogSession) Mask(layer Layer) ChunkSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.masks[layer]
}

// LayerStats retorna as estatísticas de exploração da camada.
func (s *FogSession) LayerStats(layer Layer) ExplorationStats {
	return Stats(s.Mask(layer))
}

// ResetLayer limpa a máscara (memória e disco) de uma única camada.
// As demais camadas não são afetadas.
func (s *FogSession) ResetLayer(layer Layer) {
	// Drena saves em voo para que nenhum deles ressuscite a máscara antiga
	// depois da limpeza do disco
	s.Flush()

	s.mu.Lock()
	s.masks[layer] = NewChunkSet()
	s.mu.Unlock()

	if err := s.store.Clear(layer); err != nil {
		log.Printf("[Fog] ERRO ao limpar máscara de %s: %v", layer.Key(), err)
	}
	log.Printf("[Fog] Exploração da camada %s reiniciada", layer.Key())
}

// ResetAll limpa as máscaras de todas as camadas.
func (s *FogSession) ResetAll() {
	for _, layer := range AllLayers {
		s.ResetLayer(layer)
	}
}

// ReloadAll recarrega todas as máscaras do disco, descartando o estado em
// memória. Usado após um import de backup, quando as cópias em memória não
// são mais válidas.
func (s *FogSession) ReloadAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, layer := range AllLayers {
		s.masks[layer] = s.store.Load(layer)
	}
}
