package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"AbyssVision/cliente/internal/camera"
	"AbyssVision/cliente/internal/client"
	"AbyssVision/cliente/internal/overlay"
	"AbyssVision/cliente/internal/render"
	"AbyssVision/shared/config"
	"AbyssVision/shared/mapdata"
)

// App é a aplicação principal do AbyssVision: conecta o polling do jogo, a
// sessão de exploração e a renderização do mapa.
type App struct {
	Config *config.Config

	Cam      *camera.Controller
	renderer *render.Renderer

	netClient *client.GameClient
	hub       *overlay.Hub

	db      *mapdata.Database
	store   *mapdata.FogStore
	session *mapdata.FogSession
	backup  *mapdata.Backup

	// Estado publicado por tick (pull para o HUD, push para o overlay)
	published stateBox

	// Cache dos marcadores do banco, recarregado a cada mutação. O draw e o
	// hit-test rodam por frame e não podem pagar uma consulta SQLite cada um.
	markers []mapdata.MarkerModel

	// Seleção atual (hit-test do mouse)
	Selected Selection

	frameCount int
}

// New monta a aplicação: abre o banco, carrega as máscaras persistidas e
// prepara o cliente de rede. Nenhuma janela é criada aqui.
func New(cfg *config.Config) (*App, error) {
	store, err := mapdata.NewFogStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := mapdata.OpenDatabase(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	session := mapdata.NewFogSession(store)

	a := &App{
		Config:   cfg,
		renderer: render.New(),
		db:       db,
		store:    store,
		session:  session,
		backup:   mapdata.NewBackup(db, store, session),
	}

	a.published.SetStatus(client.Status{Kind: client.StatusDisconnected})
	a.reloadMarkers()
	return a, nil
}

// Run inicia a janela e o loop principal. Bloqueia até a janela fechar.
// O polling começa quando a tela aparece e para quando ela some.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)

	a.Cam = camera.New()
	a.Cam.MoveSpeed = a.Config.CameraSpeed
	a.Cam.ZoomSpeed = a.Config.ZoomSpeed

	if a.Config.OverlayEnabled {
		a.hub = overlay.NewHub()
		go a.hub.Run()
		go a.hub.Serve(a.Config.OverlayPort)
	}

	a.connectGame()
	log.Println("[App] Janela inicializada com sucesso")

	for !rl.WindowShouldClose() {
		a.frameCount++
		a.updateInput()
		a.draw()
	}

	a.shutdown()
}

// shutdown encerra o polling e drena a persistência pendente.
func (a *App) shutdown() {
	if a.netClient != nil {
		a.netClient.Stop()
	}
	a.session.Close()
	rl.CloseWindow()
	log.Println("[App] Encerrado")
}
