package mapdata

import (
	"AbyssVision/shared/util"
)

// ChunkSet é o conjunto de chunks visitados de uma camada (névoa de guerra).
// Durante o jogo o conjunto só cresce; chunks nunca são removidos exceto por
// um reset explícito. O crescimento é limitado pela grade finita (410x410).
type ChunkSet map[util.ChunkKey]struct{}

// NewChunkSet cria um conjunto vazio.
func NewChunkSet() ChunkSet {
	return make(ChunkSet)
}

// Contains verifica se o chunk já foi visitado.
func (s ChunkSet) Contains(k util.ChunkKey) bool {
	_, ok := s[k]
	return ok
}

// Add marca o chunk como visitado.
func (s ChunkSet) Add(k util.ChunkKey) {
	s[k] = struct{}{}
}

// Clone retorna uma cópia independente do conjunto.
func (s ChunkSet) Clone() ChunkSet {
	out := make(ChunkSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Keys retorna as chaves do conjunto (sem ordem garantida).
func (s ChunkSet) Keys() []util.ChunkKey {
	out := make([]util.ChunkKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// ExplorationStats resume o progresso de exploração de uma camada.
type ExplorationStats struct {
	Explored int64
	Total    int64
	Percent  float64
}

// Stats calcula as estatísticas derivadas do conjunto. O total é o número de
// chunks endereçáveis da grade; o percentual nunca excede 100.
func Stats(s ChunkSet) ExplorationStats {
	st := ExplorationStats{
		Explored: int64(len(s)),
		Total:    util.TotalChunks,
	}
	st.Percent = 100.0 * float64(st.Explored) / float64(st.Total)
	return st
}
