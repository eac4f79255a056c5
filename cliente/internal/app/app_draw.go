package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"AbyssVision/cliente/internal/client"
)

// draw renderiza a cena completa do frame.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(8, 12, 20, 255))

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza o mapa 2D dentro da câmera.
func (a *App) drawScene() {
	state := a.published.Snapshot()

	rl.BeginMode2D(a.Cam.RLCamera)

	a.renderer.DrawBackground(state.ActiveLayer, a.db.DetailedMap())

	if a.Config.ShowGrid {
		a.renderer.DrawGrid()
	}

	if a.db.FogEnabled() {
		mask := a.session.Mask(state.ActiveLayer)
		showLive := state.Status.Kind == client.StatusConnected
		a.renderer.DrawFog(mask, state.Player, showLive)
	}

	// Marcadores do usuário da camada ativa
	for _, m := range a.markersForLayer(state.ActiveLayer) {
		marker := m
		selected := a.Selected.Kind == SelectionCustom && a.Selected.Custom.ID == marker.ID
		a.renderer.DrawMarker(&marker, selected)
	}

	// Sinalizadores e veículos vindos do jogo
	for i := range state.Beacons {
		b := state.Beacons[i]
		selected := a.Selected.Kind == SelectionBeacon && a.Selected.Beacon.Label == b.Label
		a.renderer.DrawBeacon(b.X, b.Z, selected)
	}
	for i := range state.Vehicles {
		v := state.Vehicles[i]
		selected := a.Selected.Kind == SelectionVehicle && a.Selected.Vehicle.Name == v.Name
		a.renderer.DrawVehicle(v.X, v.Z, selected)
	}

	if state.Status.Kind == client.StatusConnected {
		a.renderer.DrawPlayer(state.Player, state.Heading)
	}

	rl.EndMode2D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	state := a.published.Snapshot()

	// Barra de status no topo
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), 34, rl.NewColor(0, 0, 0, 180))

	statusColor := rl.Red
	switch state.Status.Kind {
	case client.StatusConnected:
		statusColor = rl.Green
	case client.StatusWaitingForGame:
		statusColor = rl.Yellow
	}
	rl.DrawCircle(18, 17, 7, statusColor)
	rl.DrawText(state.StatusText, 34, 8, 20, rl.White)

	layerText := fmt.Sprintf("%s  |  %.3f%% explorado", state.LayerLabel, state.Stats.Percent)
	rl.DrawText(layerText,
		int32(rl.GetScreenWidth())-rl.MeasureText(layerText, 20)-12, 8, 20, rl.SkyBlue)

	// Seleção atual
	if a.Selected.Kind != SelectionNone {
		label := a.Selected.Label()
		rl.DrawRectangle(0, 34, rl.MeasureText(label, 18)+24, 28, rl.NewColor(0, 0, 0, 160))
		rl.DrawText(label, 12, 39, 18, rl.White)
	}

	if !a.Config.ShowDebugInfo {
		return
	}

	// Painel de debug
	width := int32(300)
	height := int32(150)
	x := int32(10)
	y := int32(rl.GetScreenHeight()) - height - 10

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	rl.DrawText(fmt.Sprintf("Posição: (%.0f, %.0f)  Prof: %.0fm",
		state.Player.X, state.Player.Z, state.Depth), x+10, y+40, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Bioma: %s", state.Biome), x+10, y+62, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Chunks: %d / %d", state.Stats.Explored, state.Stats.Total),
		x+10, y+84, 16, rl.LightGray)

	overrideText := "Camada: automática"
	if override := a.db.LayerOverride(); override != nil {
		overrideText = fmt.Sprintf("Camada fixada: %s", override.Label())
	}
	rl.DrawText(overrideText, x+10, y+106, 16, rl.Gold)

	rl.DrawText(fmt.Sprintf("Zoom: %.2fx", a.Cam.CurrentZoom), x+10, y+128, 16, rl.Gray)
}
