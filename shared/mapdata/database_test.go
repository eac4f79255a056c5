package mapdata

import (
	"testing"

	"AbyssVision/shared/util"
)

func TestSettingsDefaults(t *testing.T) {
	db := newTestDatabase(t)

	if !db.FogEnabled() {
		t.Error("FogEnabled padrão deveria ser true")
	}
	if db.DetailedMap() {
		t.Error("DetailedMap padrão deveria ser false")
	}
	if db.LayerOverride() != nil {
		t.Error("LayerOverride padrão deveria ser ausente")
	}
}

func TestSettingsPersist(t *testing.T) {
	db := newTestDatabase(t)

	db.SetFogEnabled(false)
	db.SetDetailedMap(true)
	override := LayerLavaLakes
	db.SetLayerOverride(&override)

	if db.FogEnabled() {
		t.Error("FogEnabled não persistiu")
	}
	if !db.DetailedMap() {
		t.Error("DetailedMap não persistiu")
	}
	if got := db.LayerOverride(); got == nil || *got != LayerLavaLakes {
		t.Errorf("LayerOverride = %v", got)
	}

	// Voltar ao automático
	db.SetLayerOverride(nil)
	if db.LayerOverride() != nil {
		t.Error("LayerOverride não foi limpo")
	}
}

func TestMarkerCRUD(t *testing.T) {
	db := newTestDatabase(t)

	m := NewMarker("Destroços", util.Vector3{X: 340, Y: -120, Z: -80}, 2, LayerSurface)
	if m.ID == "" {
		t.Fatal("marcador sem ID")
	}
	if err := db.SaveMarker(m); err != nil {
		t.Fatal(err)
	}

	// Edição (rótulo e cor são mutáveis)
	m.Label = "Destroços do Aurora"
	m.Color = 5
	if err := db.SaveMarker(m); err != nil {
		t.Fatal(err)
	}

	markers := db.Markers()
	if len(markers) != 1 {
		t.Fatalf("marcadores = %d, want 1", len(markers))
	}
	if markers[0] != m {
		t.Errorf("got %+v, want %+v", markers[0], m)
	}

	if err := db.DeleteMarker(m.ID); err != nil {
		t.Fatal(err)
	}
	if got := db.Markers(); len(got) != 0 {
		t.Errorf("marcadores após remoção = %d, want 0", len(got))
	}
}

func TestMarkerColorClamped(t *testing.T) {
	m := NewMarker("x", util.Vector3{}, 99, LayerSurface)
	if m.Color != 0 {
		t.Errorf("cor fora da paleta deveria cair para 0, got %d", m.Color)
	}
	m = NewMarker("x", util.Vector3{}, -1, LayerSurface)
	if m.Color != 0 {
		t.Errorf("cor negativa deveria cair para 0, got %d", m.Color)
	}
}

func TestDeleteAllMarkers(t *testing.T) {
	db := newTestDatabase(t)

	for i := 0; i < 4; i++ {
		if err := db.SaveMarker(NewMarker("m", util.Vector3{X: float32(i)}, i, LayerSurface)); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.DeleteAllMarkers(); err != nil {
		t.Fatal(err)
	}
	if got := db.Markers(); len(got) != 0 {
		t.Errorf("marcadores = %d, want 0", len(got))
	}
}
