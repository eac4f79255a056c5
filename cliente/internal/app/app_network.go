package app

import (
	"encoding/json"
	"time"

	"AbyssVision/cliente/internal/client"
	"AbyssVision/shared/mapdata"
	"AbyssVision/shared/util"
)

// connectGame cria o cliente de polling e instala os callbacks de tick.
func (a *App) connectGame() {
	a.netClient = client.NewGameClient(
		a.Config.GameURL,
		time.Duration(a.Config.PollIntervalMS)*time.Millisecond,
		time.Duration(a.Config.FetchTimeoutMS)*time.Millisecond,
	)

	a.netClient.OnStatus = func(status client.Status) {
		a.published.SetStatus(status)
	}

	a.netClient.OnTick = a.handleTick

	a.netClient.Start()
}

// handleTick é o coração do companion: por tick, resolve a camada ativa
// (override manual tem precedência sobre a classificação do bioma), funde o
// chunk sob o jogador na máscara daquela camada e publica o novo estado.
func (a *App) handleTick(state *client.GameState) {
	pos := util.Vector3{X: state.X, Y: state.Y, Z: state.Z}

	layer := mapdata.EffectiveLayer(a.db.LayerOverride(), state.Biome)
	a.session.OnTick(layer, pos, a.db.FogEnabled())

	snapshot := PublishedState{
		Status:      client.Status{Kind: client.StatusConnected},
		StatusText:  client.Status{Kind: client.StatusConnected}.Message(),
		ActiveLayer: layer,
		LayerLabel:  layer.Label(),
		Player:      pos,
		Heading:     state.Heading,
		Depth:       -state.Y,
		Biome:       state.Biome,
		DayNight:    state.DayNightScalar,
		Beacons:     state.Beacons,
		Vehicles:    state.Vehicles,
		Stats:       a.session.LayerStats(layer),
	}
	a.published.Set(snapshot)

	if a.hub != nil {
		if data, err := json.Marshal(snapshot); err == nil {
			a.hub.Broadcast(data)
		}
	}
}
