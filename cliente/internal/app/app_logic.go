package app

import (
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"AbyssVision/cliente/internal/render"
	"AbyssVision/shared/mapdata"
	"AbyssVision/shared/util"
)

// hitRadius é o raio de acerto do hit-test em unidades do mundo, na escala
// de zoom 1.0 (cresce quando o mapa está afastado).
const hitRadius float32 = 14.0

// pickAt resolve o que está sob a posição de tela dada, na ordem de
// prioridade: marcador do usuário, sinalizador, veículo, jogador.
func (a *App) pickAt(screen rl.Vector2) Selection {
	world := a.Cam.ScreenToWorld(screen)
	wx, wz := render.WorldPoint(world)
	radius := hitRadius / a.Cam.CurrentZoom
	radiusSq := radius * radius

	state := a.published.Snapshot()
	point := util.Vector3{X: wx, Z: wz}

	best := Selection{}
	bestDist := radiusSq

	for _, m := range a.markersForLayer(state.ActiveLayer) {
		marker := m
		d := util.DistSq2D(point, marker.Position())
		if d <= bestDist {
			bestDist = d
			best = Selection{Kind: SelectionCustom, Custom: &marker}
		}
	}
	for i := range state.Beacons {
		b := state.Beacons[i]
		d := util.DistSq2D(point, util.Vector3{X: b.X, Z: b.Z})
		if d <= bestDist {
			bestDist = d
			best = Selection{Kind: SelectionBeacon, Beacon: &b}
		}
	}
	for i := range state.Vehicles {
		v := state.Vehicles[i]
		d := util.DistSq2D(point, util.Vector3{X: v.X, Z: v.Z})
		if d <= bestDist {
			bestDist = d
			best = Selection{Kind: SelectionVehicle, Vehicle: &v}
		}
	}
	if util.DistSq2D(point, state.Player) <= bestDist {
		best = Selection{Kind: SelectionPlayer}
	}

	return best
}

// reloadMarkers recarrega o cache de marcadores do banco. Deve ser chamado
// após qualquer mutação de marcadores.
func (a *App) reloadMarkers() {
	a.markers = a.db.Markers()
}

// markersForLayer retorna os marcadores do usuário pertencentes à camada,
// a partir do cache.
func (a *App) markersForLayer(layer mapdata.Layer) []mapdata.MarkerModel {
	var out []mapdata.MarkerModel
	for _, m := range a.markers {
		if owner, ok := mapdata.ParseLayer(m.Layer); ok && owner == layer {
			out = append(out, m)
		}
	}
	return out
}

// addMarkerAt cria um marcador na posição de tela indicada, na camada ativa.
func (a *App) addMarkerAt(screen rl.Vector2) {
	world := a.Cam.ScreenToWorld(screen)
	wx, wz := render.WorldPoint(world)
	state := a.published.Snapshot()

	m := mapdata.NewMarker(
		fmt.Sprintf("Marcador %s", time.Now().Format("15:04:05")),
		util.Vector3{X: wx, Y: state.Player.Y, Z: wz},
		0,
		state.ActiveLayer,
	)
	if err := a.db.SaveMarker(m); err != nil {
		log.Printf("[App] ERRO ao criar marcador: %v", err)
		return
	}
	a.reloadMarkers()
	log.Printf("[App] Marcador criado em (%.0f, %.0f) na camada %s", wx, wz, m.Layer)
}

// addMarkerAtPlayer cria um marcador na posição atual do jogador.
func (a *App) addMarkerAtPlayer() {
	state := a.published.Snapshot()
	m := mapdata.NewMarker(
		fmt.Sprintf("Marcador %s", time.Now().Format("15:04:05")),
		state.Player,
		0,
		state.ActiveLayer,
	)
	if err := a.db.SaveMarker(m); err != nil {
		log.Printf("[App] ERRO ao criar marcador: %v", err)
		return
	}
	a.reloadMarkers()
}

// cycleSelectedColor avança a cor do marcador selecionado pela paleta.
func (a *App) cycleSelectedColor() {
	if a.Selected.Kind != SelectionCustom {
		return
	}
	m := *a.Selected.Custom
	m.Color = (m.Color + 1) % mapdata.MarkerColorCount
	if err := a.db.SaveMarker(m); err != nil {
		log.Printf("[App] ERRO ao editar marcador: %v", err)
		return
	}
	a.reloadMarkers()
	a.Selected.Custom = &m
}

// deleteSelected remove o marcador do usuário selecionado.
func (a *App) deleteSelected() {
	if a.Selected.Kind != SelectionCustom {
		return
	}
	if err := a.db.DeleteMarker(a.Selected.Custom.ID); err != nil {
		log.Printf("[App] ERRO ao remover marcador: %v", err)
		return
	}
	a.reloadMarkers()
	a.Selected = Selection{}
}

// cycleOverride avança a seleção manual de camada:
// automático → Superfície → ... → Lagos de Lava → automático.
func (a *App) cycleOverride() {
	current := a.db.LayerOverride()
	if current == nil {
		first := mapdata.AllLayers[0]
		a.db.SetLayerOverride(&first)
		log.Printf("[App] Camada fixada: %s", first.Label())
		return
	}
	idx := int(*current) + 1
	if idx >= len(mapdata.AllLayers) {
		a.db.SetLayerOverride(nil)
		log.Println("[App] Camada em modo automático")
		return
	}
	next := mapdata.AllLayers[idx]
	a.db.SetLayerOverride(&next)
	log.Printf("[App] Camada fixada: %s", next.Label())
}

// ImportBackupFile restaura um documento de backup gravado em disco.
// Em documento inválido nada é mutado e o erro é devolvido ao chamador.
func (a *App) ImportBackupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.backup.ImportJSON(data); err != nil {
		return err
	}
	a.reloadMarkers()
	return nil
}

// exportBackup grava o documento de backup completo em disco.
func (a *App) exportBackup() {
	data, err := a.backup.ExportJSON()
	if err != nil {
		log.Printf("[Backup] ERRO no export: %v", err)
		return
	}
	name := fmt.Sprintf("abyssvision_backup_%s.json", time.Now().Format("2006-01-02_15-04-05"))
	if err := os.WriteFile(name, data, 0644); err != nil {
		log.Printf("[Backup] ERRO ao gravar %s: %v", name, err)
		return
	}
	log.Printf("[Backup] Exportado para %s", name)
}
