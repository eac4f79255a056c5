package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateInput processa câmera, teclado e mouse do frame.
func (a *App) updateInput() {
	dt := rl.GetFrameTime()

	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Grade de chunks
	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGrid = !a.Config.ShowGrid
	}

	// Névoa de guerra liga/desliga
	if rl.IsKeyPressed(rl.KeyF) {
		enabled := !a.db.FogEnabled()
		a.db.SetFogEnabled(enabled)
		log.Printf("[App] Névoa de guerra: %v", enabled)
	}

	// Fundo detalhado
	if rl.IsKeyPressed(rl.KeyT) {
		a.db.SetDetailedMap(!a.db.DetailedMap())
	}

	// Override manual de camada
	if rl.IsKeyPressed(rl.KeyL) {
		a.cycleOverride()
	}

	// Centralizar no jogador
	if rl.IsKeyPressed(rl.KeySpace) {
		state := a.published.Snapshot()
		a.Cam.SetTarget(rl.Vector2{X: state.Player.X, Y: -state.Player.Z})
	}

	// Marcadores
	if rl.IsKeyPressed(rl.KeyM) {
		a.addMarkerAtPlayer()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.cycleSelectedColor()
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		a.deleteSelected()
	}

	// Backup
	if rl.IsKeyPressed(rl.KeyF5) {
		a.exportBackup()
	}

	// Reset da camada ativa (com Shift: todas)
	if rl.IsKeyPressed(rl.KeyR) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)) {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			a.session.ResetAll()
		} else {
			a.session.ResetLayer(a.published.Snapshot().ActiveLayer)
		}
	}

	// Clique esquerdo: hit-test / criação com Ctrl
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
			a.addMarkerAt(mouse)
		} else {
			a.Selected = a.pickAt(mouse)
		}
	}
}
