package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"AbyssVision/shared/mapdata"
	"AbyssVision/shared/util"
)

// MarkerPalette são as 8 cores disponíveis para marcadores do usuário.
var MarkerPalette = [mapdata.MarkerColorCount]rl.Color{
	rl.NewColor(231, 76, 60, 255),   // vermelho
	rl.NewColor(230, 126, 34, 255),  // laranja
	rl.NewColor(241, 196, 15, 255),  // amarelo
	rl.NewColor(46, 204, 113, 255),  // verde
	rl.NewColor(26, 188, 156, 255),  // turquesa
	rl.NewColor(52, 152, 219, 255),  // azul
	rl.NewColor(155, 89, 182, 255),  // roxo
	rl.NewColor(236, 240, 241, 255), // branco
}

// layerTints dá a cada camada um tom próprio de fundo, como placeholder do
// recurso de imagem (o decode de imagens fica fora do núcleo).
var layerTints = map[mapdata.Layer]rl.Color{
	mapdata.LayerSurface:          rl.NewColor(18, 60, 86, 255),
	mapdata.LayerJellyshroomCaves: rl.NewColor(74, 36, 64, 255),
	mapdata.LayerLostRiver:        rl.NewColor(26, 78, 62, 255),
	mapdata.LayerInactiveLavaZone: rl.NewColor(70, 40, 22, 255),
	mapdata.LayerLavaLakes:        rl.NewColor(92, 26, 18, 255),
}

// Renderer desenha o mapa 2D: fundo da camada, névoa de guerra, marcadores,
// sinalizadores, veículos e o jogador. Consome apenas as saídas do núcleo
// (camada ativa, máscara, raio de revelação); não contém lógica de exploração.
type Renderer struct {
	FogColor rl.Color
}

// New cria o renderer com os padrões visuais.
func New() *Renderer {
	return &Renderer{
		FogColor: rl.NewColor(5, 10, 16, 230),
	}
}

// worldToScreen converte a posição do mundo do jogo para o plano do mapa.
// X do mundo vai para X da tela; Z (norte) cresce para cima, então é negado.
func worldToScreen(x, z float32) rl.Vector2 {
	return rl.Vector2{X: x, Y: -z}
}

// DrawBackground preenche o retângulo do mundo com o tom da camada.
// detailed escolhe entre a variante simples e a detalhada do fundo.
func (r *Renderer) DrawBackground(layer mapdata.Layer, detailed bool) {
	tint := layerTints[layer]
	if detailed {
		// A variante detalhada é só um tom mais claro enquanto o recurso
		// de imagem real fica a cargo da camada de apresentação
		tint = rl.NewColor(tint.R+20, tint.G+20, tint.B+20, 255)
	}
	rl.DrawRectangle(
		int32(-util.WorldHalf), int32(-util.WorldHalf),
		int32(util.WorldSize), int32(util.WorldSize), tint)
}

// DrawFog cobre o mundo com a névoa e recorta os chunks já explorados mais o
// círculo de revelação em tempo real ao redor do jogador.
func (r *Renderer) DrawFog(mask mapdata.ChunkSet, playerPos util.Vector3, showLive bool) {
	// Névoa base sobre o mundo inteiro
	rl.DrawRectangle(
		int32(-util.WorldHalf), int32(-util.WorldHalf),
		int32(util.WorldSize), int32(util.WorldSize), r.FogColor)

	// Chunks explorados (trilha histórica persistida)
	clear := rl.NewColor(255, 255, 255, 40)
	size := int32(util.ChunkSize)
	for key := range mask {
		c := util.UnpackChunkKey(key)
		wx, wz := util.ChunkToWorld(c)
		p := worldToScreen(wx, wz)
		rl.DrawRectangle(int32(p.X), int32(p.Y), size, size, clear)
	}

	// Revelação ao vivo: sempre visível na posição atual, independente do
	// chunk já ter sido persistido
	if showLive {
		center := worldToScreen(playerPos.X, playerPos.Z)
		rl.DrawCircleV(center, mapdata.RevealRadius, rl.NewColor(255, 255, 255, 28))
	}
}

// DrawGrid desenha a grade de chunks (debug).
func (r *Renderer) DrawGrid() {
	step := util.ChunkSize * 10
	gray := rl.NewColor(255, 255, 255, 18)
	for v := -util.WorldHalf; v <= util.WorldHalf; v += step {
		rl.DrawLineV(rl.Vector2{X: v, Y: -util.WorldHalf}, rl.Vector2{X: v, Y: util.WorldHalf}, gray)
		rl.DrawLineV(rl.Vector2{X: -util.WorldHalf, Y: v}, rl.Vector2{X: util.WorldHalf, Y: v}, gray)
	}
}

// DrawPlayer desenha o jogador como um triângulo apontando para o heading.
func (r *Renderer) DrawPlayer(pos util.Vector3, heading float32) {
	center := worldToScreen(pos.X, pos.Z)
	rl.DrawCircleV(center, 14, rl.NewColor(0, 0, 0, 120))
	rl.DrawPoly(center, 3, 12, heading-90, rl.NewColor(255, 221, 87, 255))
}

// DrawBeacon desenha um sinalizador do jogo como losango.
func (r *Renderer) DrawBeacon(x, z float32, selected bool) {
	p := worldToScreen(x, z)
	color := rl.NewColor(93, 226, 231, 255)
	if selected {
		rl.DrawPoly(p, 4, 16, 45, rl.White)
	}
	rl.DrawPoly(p, 4, 12, 45, color)
}

// DrawVehicle desenha um veículo como quadrado.
func (r *Renderer) DrawVehicle(x, z float32, selected bool) {
	p := worldToScreen(x, z)
	if selected {
		rl.DrawRectangleV(rl.Vector2{X: p.X - 11, Y: p.Y - 11}, rl.Vector2{X: 22, Y: 22}, rl.White)
	}
	rl.DrawRectangleV(rl.Vector2{X: p.X - 8, Y: p.Y - 8}, rl.Vector2{X: 16, Y: 16}, rl.NewColor(255, 159, 67, 255))
}

// DrawMarker desenha um marcador do usuário na cor da sua paleta.
func (r *Renderer) DrawMarker(m *mapdata.MarkerModel, selected bool) {
	p := worldToScreen(m.X, m.Z)
	color := MarkerPalette[0]
	if m.Color >= 0 && m.Color < len(MarkerPalette) {
		color = MarkerPalette[m.Color]
	}
	if selected {
		rl.DrawCircleV(p, 13, rl.White)
	}
	rl.DrawCircleV(p, 9, color)
	rl.DrawCircleLines(int32(p.X), int32(p.Y), 9, rl.NewColor(0, 0, 0, 160))
}

// WorldPoint converte uma posição do plano do mapa de volta para o mundo do
// jogo (inverso de worldToScreen), usado no hit-testing e na criação de
// marcadores pelo cursor.
func WorldPoint(screen rl.Vector2) (x, z float32) {
	return screen.X, -screen.Y
}
