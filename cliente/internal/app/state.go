package app

import (
	"sync"

	"AbyssVision/cliente/internal/client"
	"AbyssVision/shared/mapdata"
	"AbyssVision/shared/util"
)

// PublishedState é o contêiner de estado publicado a cada tick para a camada
// de apresentação (HUD, renderer e overlay). Sem estado global: o App é o
// dono, a leitura é por pull (Snapshot) e o overlay recebe push por broadcast.
type PublishedState struct {
	Status      client.Status            `json:"status"`
	StatusText  string                   `json:"statusText"`
	ActiveLayer mapdata.Layer            `json:"activeLayer"`
	LayerLabel  string                   `json:"layerLabel"`
	Player      util.Vector3             `json:"player"`
	Heading     float32                  `json:"heading"`
	Depth       float32                  `json:"depth"`
	Biome       string                   `json:"biome"`
	DayNight    float32                  `json:"dayNight"`
	Beacons     []client.Beacon          `json:"beacons"`
	Vehicles    []client.Vehicle         `json:"vehicles"`
	Stats       mapdata.ExplorationStats `json:"stats"`
}

// stateBox guarda o estado publicado com acesso concorrente seguro:
// o tick de rede escreve, o frame de renderização lê.
type stateBox struct {
	mu    sync.RWMutex
	state PublishedState
}

// Set substitui o estado publicado inteiro.
func (b *stateBox) Set(s PublishedState) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Snapshot retorna uma cópia do estado publicado.
func (b *stateBox) Snapshot() PublishedState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// SetStatus atualiza apenas o status de conexão, preservando o resto.
func (b *stateBox) SetStatus(status client.Status) {
	b.mu.Lock()
	b.state.Status = status
	b.state.StatusText = status.Message()
	b.mu.Unlock()
}
