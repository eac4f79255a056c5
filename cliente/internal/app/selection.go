package app

import (
	"AbyssVision/cliente/internal/client"
	"AbyssVision/shared/mapdata"
)

// SelectionKind discrimina o tipo de marcador selecionado no mapa.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionPlayer
	SelectionBeacon
	SelectionVehicle
	SelectionCustom
)

// Selection é a união etiquetada do marcador sob o cursor: apenas o campo
// correspondente ao Kind é válido.
type Selection struct {
	Kind    SelectionKind
	Beacon  *client.Beacon
	Vehicle *client.Vehicle
	Custom  *mapdata.MarkerModel
}

// Label retorna o texto exibido para a seleção atual.
func (s Selection) Label() string {
	switch s.Kind {
	case SelectionPlayer:
		return "Jogador"
	case SelectionBeacon:
		return s.Beacon.Label
	case SelectionVehicle:
		return s.Vehicle.Name
	case SelectionCustom:
		return s.Custom.Label
	default:
		return ""
	}
}
