package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"AbyssVision/shared/util"
)

// Controller gerencia o pan/zoom do mapa 2D com movimento suavizado.
// O alvo (TargetLookAt/TargetZoom) é o estado desejado; o estado atual é
// interpolado a cada frame para dar sensação de peso.
type Controller struct {
	// Estado interno do Raylib
	RLCamera rl.Camera2D

	// Configurações
	MoveSpeed    float32
	ZoomSpeed    float32
	MinZoom      float32
	MaxZoom      float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo (para interpolação suave)
	TargetLookAt rl.Vector2 // Ponto do mundo no centro da tela
	TargetZoom   float32

	// Estado Atual (interpolado)
	CurrentLookAt rl.Vector2
	CurrentZoom   float32

	dragging   bool
	dragAnchor rl.Vector2
}

// New cria um novo controlador de câmera 2D.
func New() *Controller {
	c := &Controller{
		MoveSpeed:    600.0,
		ZoomSpeed:    0.1,
		MinZoom:      0.15,
		MaxZoom:      8.0,
		SmoothFactor: 0.15,

		TargetLookAt: rl.Vector2{X: 0, Y: 0},
		TargetZoom:   0.3,
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera2D{
		Zoom: c.CurrentZoom,
	}
	return c
}

// SetTarget centra a câmera imediatamente (sem suavização).
func (c *Controller) SetTarget(pos rl.Vector2) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
}

// HandleInput processa WASD/setas, arrasto do mouse e roda de zoom.
// Retorna true se houve interação manual.
func (c *Controller) HandleInput(dt float32) bool {
	moved := false

	// Pan por teclado (velocidade em unidades do mundo, independe do zoom)
	step := c.MoveSpeed * dt / c.CurrentZoom
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		c.TargetLookAt.Y -= step
		moved = true
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		c.TargetLookAt.Y += step
		moved = true
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		c.TargetLookAt.X -= step
		moved = true
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		c.TargetLookAt.X += step
		moved = true
	}

	// Pan por arrasto (botão direito ou do meio)
	if rl.IsMouseButtonDown(rl.MouseRightButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		mouse := rl.GetMousePosition()
		if c.dragging {
			c.TargetLookAt.X += (c.dragAnchor.X - mouse.X) / c.CurrentZoom
			c.TargetLookAt.Y += (c.dragAnchor.Y - mouse.Y) / c.CurrentZoom
			// Arrasto é 1:1 com o cursor; sem suavização para não "derrapar"
			c.CurrentLookAt = c.TargetLookAt
			moved = true
		}
		c.dragAnchor = mouse
		c.dragging = true
	} else {
		c.dragging = false
	}

	// Zoom pela roda, mantido dentro dos limites
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		c.TargetZoom = util.ClampF(c.TargetZoom*(1+wheel*c.ZoomSpeed), c.MinZoom, c.MaxZoom)
		moved = true
	}

	return moved
}

// Update interpola o estado atual em direção ao alvo. Deve ser chamado a
// cada frame.
func (c *Controller) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt // Normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	// Conversão rl.Vector2 -> mgl32.Vec2 para interpolação vetorial segura
	cur := mgl32.Vec2{c.CurrentLookAt.X, c.CurrentLookAt.Y}
	tgt := mgl32.Vec2{c.TargetLookAt.X, c.TargetLookAt.Y}
	lerped := cur.Add(tgt.Sub(cur).Mul(factor))

	c.CurrentLookAt = rl.Vector2{X: lerped.X(), Y: lerped.Y()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.RLCamera.Target = c.CurrentLookAt
	c.RLCamera.Offset = rl.Vector2{
		X: float32(rl.GetScreenWidth()) / 2,
		Y: float32(rl.GetScreenHeight()) / 2,
	}
	c.RLCamera.Zoom = c.CurrentZoom
}

// ScreenToWorld converte uma posição de tela para o espaço do mapa.
func (c *Controller) ScreenToWorld(screen rl.Vector2) rl.Vector2 {
	return rl.GetScreenToWorld2D(screen, c.RLCamera)
}
