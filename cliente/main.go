package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"AbyssVision/cliente/internal/app"
	"AbyssVision/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	gameURL := flag.String("game", "", "URL do endpoint de estado do jogo (padrão: http://127.0.0.1:9030/state)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	overlay := flag.Bool("overlay", false, "Habilitar o servidor de overlay WebSocket")
	dataDir := flag.String("dados", "", "Diretório dos dados persistidos")
	importFile := flag.String("importar", "", "Importar um backup antes de abrir o mapa")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_av.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║         AbyssVision v0.1.0           ║")
	log.Println("║  Mapa companion para o mundo abissal ║")
	log.Println("╚══════════════════════════════════════╝")

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *gameURL != "" {
		cfg.GameURL = *gameURL
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *overlay {
		cfg.OverlayEnabled = true
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("[App] Falha na inicialização: %v", err)
	}

	if *importFile != "" {
		if err := application.ImportBackupFile(*importFile); err != nil {
			log.Fatalf("[Backup] Falha no import de %s: %v", *importFile, err)
		}
	}

	application.Run()
}
