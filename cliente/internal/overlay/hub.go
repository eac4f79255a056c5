// Package overlay expõe o estado publicado do companion via WebSocket, para
// UIs inscritas (por exemplo um overlay de transmissão em um navegador).
// É a metade "subscribe" do contrato de publicação de estado; o HUD do
// próprio cliente consome o estado por pull direto.
package overlay

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas e o broadcast do estado.
type Hub struct {
	clients    map[*websocket.Conn]*sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// NewHub cria o hub de overlay.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		broadcast:  make(chan []byte, 256), // Bufferizado para não travar o tick
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run processa registros e broadcasts. Deve rodar em sua própria goroutine.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Overlay] Recuperado de pânico fatal: %v", r)
		}
	}()

	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = &sync.Mutex{}
			h.mu.Unlock()
			log.Printf("[Overlay] Cliente registrado: %s", client.RemoteAddr())
		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if lock, ok := h.clients[client]; ok {
				lock.Lock()
				delete(h.clients, client)
				client.Close()
				lock.Unlock()
				log.Printf("[Overlay] Cliente desregistrado: %s", client.RemoteAddr())
			}
			h.mu.Unlock()
		case message, ok := <-h.broadcast:
			if !ok {
				return
			}
			h.sendToAll(message)
		}
	}
}

// sendToAll escreve a mensagem em cada conexão, removendo as mortas.
func (h *Hub) sendToAll(message []byte) {
	type clientEntry struct {
		conn *websocket.Conn
		lock *sync.Mutex
	}

	h.mu.Lock()
	var targets []clientEntry
	for c, l := range h.clients {
		targets = append(targets, clientEntry{c, l})
	}
	h.mu.Unlock()

	for _, target := range targets {
		target.lock.Lock()
		err := target.conn.WriteMessage(websocket.TextMessage, message)
		target.lock.Unlock()
		if err != nil {
			log.Printf("[Overlay] Erro ao enviar para %s: %v", target.conn.RemoteAddr(), err)
			target.conn.Close()
			h.mu.Lock()
			delete(h.clients, target.conn)
			h.mu.Unlock()
		}
	}
}

// Broadcast enfileira uma mensagem para todas as conexões. Nunca bloqueia:
// se a fila estiver cheia, a mensagem é descartada (o próximo tick traz
// estado mais novo de qualquer forma).
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
	}
}

// Serve registra o handler /ws e sobe o servidor HTTP do overlay.
func (h *Hub) Serve(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[Overlay] Falha no upgrade WebSocket: %v", err)
			return
		}
		h.register <- conn

		// Loop de leitura só para detectar desconexão
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					h.unregister <- conn
					return
				}
			}
		}()
	})

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("[Overlay] Servidor WebSocket em ws://%s/ws", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Overlay] Servidor encerrado: %v", err)
	}
}
