package mapdata

import "strings"

// Layer identifica uma das cinco camadas do mundo.
// Cada camada tem seu próprio mapa de fundo e sua própria máscara de exploração.
type Layer int32

const (
	LayerSurface Layer = iota
	LayerJellyshroomCaves
	LayerLostRiver
	LayerInactiveLavaZone
	LayerLavaLakes
)

// AllLayers lista as camadas na ordem de profundidade (superfície primeiro).
var AllLayers = []Layer{
	LayerSurface,
	LayerJellyshroomCaves,
	LayerLostRiver,
	LayerInactiveLavaZone,
	LayerLavaLakes,
}

// Key retorna o identificador estável da camada, usado em nomes de arquivo
// e no documento de backup.
func (l Layer) Key() string {
	switch l {
	case LayerJellyshroomCaves:
		return "jellyshroomCaves"
	case LayerLostRiver:
		return "lostRiver"
	case LayerInactiveLavaZone:
		return "inactiveLavaZone"
	case LayerLavaLakes:
		return "lavaLakes"
	default:
		return "surface"
	}
}

// Label retorna o nome da camada exibido no HUD.
func (l Layer) Label() string {
	switch l {
	case LayerJellyshroomCaves:
		return "Cavernas Jellyshroom"
	case LayerLostRiver:
		return "Lost River"
	case LayerInactiveLavaZone:
		return "Zona de Lava Inativa"
	case LayerLavaLakes:
		return "Lagos de Lava"
	default:
		return "Superfície"
	}
}

// Backgrounds retorna os identificadores dos mapas de fundo da camada
// (variante simples e detalhada). São apenas handles opacos para o renderer.
func (l Layer) Backgrounds() (blank, detailed string) {
	key := l.Key()
	return key + "_blank.png", key + "_detailed.png"
}

// ParseLayer converte um identificador (case-insensitive) de volta para a
// camada. Retorna false para nomes desconhecidos.
func ParseLayer(name string) (Layer, bool) {
	for _, l := range AllLayers {
		if strings.EqualFold(name, l.Key()) {
			return l, true
		}
	}
	return LayerSurface, false
}

// Tabela de classificação de biomas. Os nomes de bioma do jogo variam por
// sub-zona (muitas sub-áreas distintas do Lost River, por exemplo), então a
// correspondência é por substring com a primeira regra vencendo. A Zona de
// Lava Inativa vem antes dos Lagos de Lava: "activelava" é substring de
// "inactivelava" e dispararia primeiro na ordem inversa.
var biomeRules = []struct {
	layer    Layer
	triggers []string
}{
	{LayerInactiveLavaZone, []string{"ilz", "inactivelava", "intactivelava", "lavacastle", "lavapit"}},
	{LayerLavaLakes, []string{"lavalakes", "introlava", "activelava"}},
	{LayerLostRiver, []string{"lostriver"}},
	{LayerJellyshroomCaves, []string{"jellyshroom"}},
}

// ClassifyBiome mapeia o identificador de bioma reportado pelo jogo para a
// camada correspondente. Bioma vazio ou desconhecido resulta em Superfície.
func ClassifyBiome(biome string) Layer {
	if biome == "" {
		return LayerSurface
	}
	b := strings.ToLower(biome)
	for _, rule := range biomeRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(b, trigger) {
				return rule.layer
			}
		}
	}
	return LayerSurface
}

// EffectiveLayer resolve a camada ativa: o override manual, quando definido,
// tem precedência sobre a classificação por bioma.
func EffectiveLayer(override *Layer, biome string) Layer {
	if override != nil {
		return *override
	}
	return ClassifyBiome(biome)
}
