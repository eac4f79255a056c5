package mapdata

import (
	"testing"

	"AbyssVision/shared/util"
)

func newTestSession(t *testing.T) *FogSession {
	t.Helper()
	session := NewFogSession(newTestStore(t))
	t.Cleanup(session.Close)
	return session
}

func TestOnTickMarksChunk(t *testing.T) {
	session := newTestSession(t)

	pos := util.Vector3{X: 0, Y: 0, Z: 0}
	if !session.OnTick(LayerSurface, pos, true) {
		t.Fatal("primeiro tick deveria crescer a máscara")
	}

	mask := session.Mask(LayerSurface)
	want := util.PackChunkKey(util.WorldToChunk(0, 0))
	if len(mask) != 1 || !mask.Contains(want) {
		t.Errorf("máscara = %v, want {%d}", mask.Keys(), want)
	}

	// Mesmo chunk de novo: sem crescimento
	if session.OnTick(LayerSurface, pos, true) {
		t.Error("tick repetido no mesmo chunk não deveria crescer a máscara")
	}
}

func TestOnTickDisabled(t *testing.T) {
	session := newTestSession(t)

	if session.OnTick(LayerSurface, util.Vector3{X: 5, Z: 5}, false) {
		t.Error("tick com névoa desabilitada deveria ser no-op")
	}
	if len(session.Mask(LayerSurface)) != 0 {
		t.Error("máscara mutada com névoa desabilitada")
	}
}

func TestMaskMonotonic(t *testing.T) {
	session := newTestSession(t)

	positions := []util.Vector3{
		{X: 0, Z: 0},
		{X: 50, Z: 0},
		{X: 50, Z: 50},
		{X: -120, Z: 300},
		{X: 0, Z: 0}, // revisita
	}

	var prev ChunkSet
	for i, pos := range positions {
		session.OnTick(LayerSurface, pos, true)
		cur := session.Mask(LayerSurface)
		for k := range prev {
			if !cur.Contains(k) {
				t.Fatalf("tick %d: chunk %d sumiu da máscara", i, k)
			}
		}
		prev = cur
	}
}

func TestResetLayerIsolation(t *testing.T) {
	session := newTestSession(t)

	session.OnTick(LayerSurface, util.Vector3{X: 0, Z: 0}, true)
	session.OnTick(LayerLostRiver, util.Vector3{X: -2040, Y: -600, Z: 0}, true)

	session.ResetLayer(LayerSurface)

	if got := session.LayerStats(LayerSurface); got.Explored != 0 {
		t.Errorf("Superfície deveria estar vazia, got %d", got.Explored)
	}
	if got := session.LayerStats(LayerLostRiver); got.Explored != 1 {
		t.Errorf("Lost River não deveria ser afetado, got %d", got.Explored)
	}
}

func TestResetAll(t *testing.T) {
	session := newTestSession(t)

	for i, layer := range AllLayers {
		session.OnTick(layer, util.Vector3{X: float32(i) * 100, Z: 0}, true)
	}
	session.ResetAll()

	for _, layer := range AllLayers {
		if got := session.LayerStats(layer); got.Explored != 0 {
			t.Errorf("camada %s não foi limpa: %d chunks", layer.Key(), got.Explored)
		}
	}
}

// Cenário fim-a-fim: classificação + exploração em dois ticks.
func TestClassificationExplorationScenario(t *testing.T) {
	session := newTestSession(t)

	ticks := []struct {
		pos   util.Vector3
		biome string
	}{
		{util.Vector3{X: 0, Y: 0, Z: 0}, "safeShallows"},
		{util.Vector3{X: -2040, Y: -600, Z: 0}, "LostRiver_Canyon"},
	}

	var active Layer
	for _, tick := range ticks {
		active = EffectiveLayer(nil, tick.biome)
		session.OnTick(active, tick.pos, true)
	}

	if active != LayerLostRiver {
		t.Errorf("camada ativa final = %v, want LostRiver", active)
	}
	if got := session.LayerStats(LayerSurface); got.Explored != 1 {
		t.Errorf("Superfície = %d chunks, want 1", got.Explored)
	}
	if got := session.LayerStats(LayerLostRiver); got.Explored != 1 {
		t.Errorf("LostRiver = %d chunks, want 1", got.Explored)
	}
}

// Com override definido, o tick explora a camada fixada, não a do bioma.
func TestOverridePrecedence(t *testing.T) {
	session := newTestSession(t)

	override := LayerInactiveLavaZone
	active := EffectiveLayer(&override, "safeShallows")
	if active != LayerInactiveLavaZone {
		t.Fatalf("camada ativa = %v, want InactiveLavaZone", active)
	}

	session.OnTick(active, util.Vector3{X: 0, Z: 0}, true)

	if got := session.LayerStats(LayerInactiveLavaZone); got.Explored != 1 {
		t.Errorf("InactiveLavaZone = %d chunks, want 1", got.Explored)
	}
	if got := session.LayerStats(LayerSurface); got.Explored != 0 {
		t.Errorf("Superfície = %d chunks, want 0", got.Explored)
	}
}

// O conjunto publicado por Mask não pode mudar depois de retornado
// (substituição atômica por união, nunca mutação incremental).
func TestMaskSnapshotStable(t *testing.T) {
	session := newTestSession(t)

	session.OnTick(LayerSurface, util.Vector3{X: 0, Z: 0}, true)
	snapshot := session.Mask(LayerSurface)

	session.OnTick(LayerSurface, util.Vector3{X: 500, Z: 500}, true)

	if len(snapshot) != 1 {
		t.Errorf("snapshot anterior foi mutado: %d chunks", len(snapshot))
	}
	if got := session.Mask(LayerSurface); len(got) != 2 {
		t.Errorf("máscara atual = %d chunks, want 2", len(got))
	}
}

// A persistência assíncrona deve aterrissar após o fechamento da sessão.
func TestSessionPersistsAcrossRestart(t *testing.T) {
	store := newTestStore(t)

	session := NewFogSession(store)
	session.OnTick(LayerJellyshroomCaves, util.Vector3{X: 130, Z: -260}, true)
	session.Close() // drena os saves pendentes

	reopened := NewFogSession(store)
	defer reopened.Close()
	if got := reopened.LayerStats(LayerJellyshroomCaves); got.Explored != 1 {
		t.Errorf("máscara não sobreviveu ao reinício: %d chunks", got.Explored)
	}
}
