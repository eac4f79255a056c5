package client

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestFetchStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    StatusKind
	}{
		{
			"partida ativa",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"inGame": true, "x": 1, "y": -5, "z": 2, "biome": "safeShallows"}`))
			},
			StatusConnected,
		},
		{
			"mod de pé sem partida",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"inGame": false}`))
			},
			StatusWaitingForGame,
		},
		{
			"resposta ilegível",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`carregando...`))
			},
			StatusWaitingForGame,
		},
		{
			"erro HTTP",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			StatusError,
		},
	}

	for _, tt := range tests {
		server := httptest.NewServer(tt.handler)
		c := NewGameClient(server.URL, time.Second, time.Second)

		var mu sync.Mutex
		var gotStatus Status
		var gotState *GameState
		c.OnStatus = func(s Status) {
			mu.Lock()
			gotStatus = s
			mu.Unlock()
		}
		c.OnTick = func(s *GameState) {
			mu.Lock()
			gotState = s
			mu.Unlock()
		}

		c.Start()
		// O primeiro tick roda imediatamente no Start
		deadline := time.Now().Add(2 * time.Second)
		for {
			mu.Lock()
			kind := gotStatus.Kind
			mu.Unlock()
			if kind == tt.want || time.Now().After(deadline) {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		c.Stop()
		server.Close()

		mu.Lock()
		if gotStatus.Kind != tt.want {
			t.Errorf("%s: status = %v, want %v", tt.name, gotStatus.Kind, tt.want)
		}
		if tt.want == StatusConnected {
			if gotState == nil || gotState.Biome != "safeShallows" || gotState.Y != -5 {
				t.Errorf("%s: estado decodificado incorreto: %+v", tt.name, gotState)
			}
		} else if gotState != nil {
			t.Errorf("%s: OnTick não deveria disparar, got %+v", tt.name, gotState)
		}
		mu.Unlock()
	}
}

func TestFetchUnreachable(t *testing.T) {
	// Porta fechada: falha de transporte vira status de erro, nunca pânico
	c := NewGameClient("http://127.0.0.1:1/state", time.Second, 200*time.Millisecond)

	done := make(chan Status, 1)
	c.OnStatus = func(s Status) {
		select {
		case done <- s:
		default:
		}
	}

	c.Start()
	defer c.Stop()

	select {
	case s := <-done:
		if s.Kind != StatusError {
			t.Errorf("status = %v, want StatusError", s.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nenhum status publicado")
	}
}

func TestStartStopIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"inGame": false}`))
	}))
	defer server.Close()

	c := NewGameClient(server.URL, 50*time.Millisecond, time.Second)

	// Stop sem Start é um no-op
	c.Stop()
	if c.Running() {
		t.Fatal("cliente não deveria estar rodando")
	}

	c.Start()
	c.Start() // segundo Start é um no-op
	if !c.Running() {
		t.Fatal("cliente deveria estar rodando")
	}

	c.Stop()
	c.Stop() // segundo Stop é um no-op
	if c.Running() {
		t.Fatal("cliente deveria estar parado")
	}
}

func TestStopHaltsFetches(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.Write([]byte(`{"inGame": false}`))
	}))
	defer server.Close()

	c := NewGameClient(server.URL, 30*time.Millisecond, time.Second)
	c.Start()
	time.Sleep(100 * time.Millisecond)
	c.Stop()

	mu.Lock()
	after := requests
	mu.Unlock()

	// Nenhum fetch novo começa depois do cancelamento ser observado
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	final := requests
	mu.Unlock()

	if final > after+1 {
		t.Errorf("fetches continuaram após Stop: %d -> %d", after, final)
	}
}
