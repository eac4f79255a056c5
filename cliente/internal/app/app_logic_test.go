package app

import (
	"os"
	"path/filepath"
	"testing"

	"AbyssVision/shared/config"
	"AbyssVision/shared/mapdata"
	"AbyssVision/shared/util"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.session.Close)
	return a
}

// O cache de marcadores deve acompanhar cada mutação feita pela aplicação,
// sem consultar o banco por frame.
func TestMarkerCacheFollowsMutations(t *testing.T) {
	a := newTestApp(t)

	a.published.Set(PublishedState{
		ActiveLayer: mapdata.LayerSurface,
		Player:      util.Vector3{X: 120, Y: -15, Z: -340},
	})

	a.addMarkerAtPlayer()

	markers := a.markersForLayer(mapdata.LayerSurface)
	if len(markers) != 1 {
		t.Fatalf("cache após criação = %d marcadores, want 1", len(markers))
	}
	if markers[0].X != 120 || markers[0].Z != -340 {
		t.Errorf("posição do marcador = (%v, %v), want (120, -340)", markers[0].X, markers[0].Z)
	}

	// Edição: o avanço de cor deve aparecer no cache
	a.Selected = Selection{Kind: SelectionCustom, Custom: &markers[0]}
	a.cycleSelectedColor()
	if got := a.markersForLayer(mapdata.LayerSurface); len(got) != 1 || got[0].Color != 1 {
		t.Errorf("cache após edição de cor = %+v, want cor 1", got)
	}

	// Remoção: cache e banco vazios
	a.deleteSelected()
	if got := a.markersForLayer(mapdata.LayerSurface); len(got) != 0 {
		t.Errorf("cache após remoção = %d marcadores, want 0", len(got))
	}
	if got := a.db.Markers(); len(got) != 0 {
		t.Errorf("banco após remoção = %d marcadores, want 0", len(got))
	}
	if a.Selected.Kind != SelectionNone {
		t.Error("seleção deveria ser limpa após a remoção")
	}
}

func TestMarkersForLayerFilters(t *testing.T) {
	a := newTestApp(t)

	a.published.Set(PublishedState{ActiveLayer: mapdata.LayerSurface})
	a.addMarkerAtPlayer()
	a.published.Set(PublishedState{ActiveLayer: mapdata.LayerLostRiver})
	a.addMarkerAtPlayer()

	if got := a.markersForLayer(mapdata.LayerSurface); len(got) != 1 {
		t.Errorf("Superfície = %d marcadores, want 1", len(got))
	}
	if got := a.markersForLayer(mapdata.LayerLostRiver); len(got) != 1 {
		t.Errorf("LostRiver = %d marcadores, want 1", len(got))
	}
	if got := a.markersForLayer(mapdata.LayerLavaLakes); len(got) != 0 {
		t.Errorf("LavaLakes = %d marcadores, want 0", len(got))
	}
}

// O import de backup substitui a coleção de marcadores; o cache precisa
// refletir o estado restaurado.
func TestMarkerCacheAfterImport(t *testing.T) {
	a := newTestApp(t)

	a.published.Set(PublishedState{ActiveLayer: mapdata.LayerSurface})
	a.addMarkerAtPlayer()

	doc := []byte(`{
		"version": 1,
		"timestamp": 0,
		"settings": {"fogOfWarEnabled": true, "useDetailedMap": false},
		"customMarkers": [
			{"id": "m1", "label": "Base", "x": 1, "y": 2, "z": 3, "color": 2, "layer": "lostRiver", "createdAt": 5}
		],
		"fogOfWarData": {}
	}`)
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatal(err)
	}

	if err := a.ImportBackupFile(path); err != nil {
		t.Fatalf("ImportBackupFile: %v", err)
	}

	if got := a.markersForLayer(mapdata.LayerSurface); len(got) != 0 {
		t.Errorf("marcador pré-import ainda no cache: %+v", got)
	}
	restored := a.markersForLayer(mapdata.LayerLostRiver)
	if len(restored) != 1 || restored[0].ID != "m1" {
		t.Fatalf("cache pós-import = %+v, want o marcador restaurado", restored)
	}
}
