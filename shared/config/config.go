package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do AbyssVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Endpoint de estado do jogo (mod local que expõe a partida em andamento)
	GameURL        string `json:"game_url"`
	PollIntervalMS int    `json:"poll_interval_ms"`
	FetchTimeoutMS int    `json:"fetch_timeout_ms"`

	// Overlay (broadcast do estado via WebSocket para UIs inscritas)
	OverlayEnabled bool `json:"overlay_enabled"`
	OverlayPort    int  `json:"overlay_port"`

	// Dados persistidos (máscaras de exploração, banco de marcadores)
	DataDir string `json:"data_dir"`

	// Câmera
	CameraSpeed float32 `json:"camera_speed"`
	ZoomSpeed   float32 `json:"zoom_speed"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "AbyssVision",
		Fullscreen:   false,
		TargetFPS:    60,

		GameURL:        "http://127.0.0.1:9030/state",
		PollIntervalMS: 1000,
		FetchTimeoutMS: 900,

		OverlayEnabled: false,
		OverlayPort:    9031,

		DataDir: "dados",

		CameraSpeed: 600.0,
		ZoomSpeed:   0.1,

		ShowDebugInfo: true,
		ShowGrid:      false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
