package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// GameState é o estado decodificado da resposta do endpoint do jogo.
// O formato JSON é fixo, exposto por um mod rodando junto da partida.
type GameState struct {
	InGame  bool    `json:"inGame"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Z       float32 `json:"z"`
	Heading float32 `json:"heading"`
	Biome   string  `json:"biome"`

	Beacons  []Beacon  `json:"beacons"`
	Vehicles []Vehicle `json:"vehicles"`

	// DayNightScalar varia de 0 (meia-noite) a 1 (meio-dia).
	DayNightScalar float32 `json:"dayNightScalar"`
}

// Beacon é um sinalizador colocado pelo jogador dentro do jogo.
type Beacon struct {
	Label string  `json:"label"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Z     float32 `json:"z"`
}

// Vehicle é um veículo do jogador reportado pelo jogo.
type Vehicle struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
}

// StatusKind discrimina o estado da conexão com o jogo.
type StatusKind int

const (
	StatusDisconnected StatusKind = iota
	StatusWaitingForGame
	StatusConnected
	StatusError
)

// Status é o valor de status publicado a cada tick. Err só é preenchido
// quando Kind == StatusError.
type Status struct {
	Kind StatusKind
	Err  string
}

// Message retorna o texto do status para exibição no HUD.
func (s Status) Message() string {
	switch s.Kind {
	case StatusConnected:
		return "Conectado"
	case StatusWaitingForGame:
		return "Aguardando partida..."
	case StatusError:
		return fmt.Sprintf("Erro: %s", s.Err)
	default:
		return "Desconectado"
	}
}

// GameClient faz o polling do endpoint de estado do jogo em cadência fixa,
// com uma única requisição pendente por vez. Falha de fetch nunca é fatal:
// vira um status e o próximo tick tenta de novo.
type GameClient struct {
	url      string
	interval time.Duration
	http     *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc

	// Callbacks para o App
	OnTick   func(state *GameState)
	OnStatus func(status Status)
}

// NewGameClient cria o cliente de polling.
func NewGameClient(url string, interval, timeout time.Duration) *GameClient {
	if interval <= 0 {
		interval = time.Second
	}
	return &GameClient{
		url:      url,
		interval: interval,
		http:     &http.Client{Timeout: timeout},
	}
}

// Start inicia o loop de polling. Chamar com o loop já rodando é um no-op.
func (c *GameClient) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.pollLoop(ctx)
	log.Printf("[Network] Polling iniciado em %s (cadência %s)", c.url, c.interval)
}

// Stop cancela o loop. Nenhum fetch novo começa após o cancelamento ser
// observado. Chamar com o loop parado é um no-op.
func (c *GameClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	log.Println("[Network] Polling encerrado")
}

// Running indica se o loop de polling está ativo.
func (c *GameClient) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// pollLoop é o corpo do loop: fetch → publicar → dormir → repetir.
func (c *GameClient) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			c.publishStatus(Status{Kind: StatusDisconnected})
			return
		case <-ticker.C:
			// Revalida o cancelamento antes de iniciar o fetch
			select {
			case <-ctx.Done():
				c.publishStatus(Status{Kind: StatusDisconnected})
				return
			default:
			}
			c.tick(ctx)
		}
	}
}

// tick executa um fetch e publica o resultado.
func (c *GameClient) tick(ctx context.Context) {
	state, status := c.fetch(ctx)
	c.publishStatus(status)
	if state != nil && c.OnTick != nil {
		c.OnTick(state)
	}
}

// fetch busca e decodifica o estado do jogo uma única vez.
// Servidor alcançável mas sem partida ativa é um status próprio, distinto de
// erro genérico, para a UI mostrar uma mensagem de espera.
func (c *GameClient) fetch(ctx context.Context) (*GameState, Status) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, Status{Kind: StatusError, Err: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Status{Kind: StatusError, Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Status{Kind: StatusError, Err: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Status{Kind: StatusError, Err: err.Error()}
	}

	var state GameState
	if err := json.Unmarshal(body, &state); err != nil {
		// Resposta 2xx ilegível: o mod está de pé mas o jogo ainda não
		// carregou uma partida
		return nil, Status{Kind: StatusWaitingForGame}
	}
	if !state.InGame {
		return nil, Status{Kind: StatusWaitingForGame}
	}

	return &state, Status{Kind: StatusConnected}
}

func (c *GameClient) publishStatus(status Status) {
	if c.OnStatus != nil {
		c.OnStatus(status)
	}
}
