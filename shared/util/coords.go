package util

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vector3 é um alias para rl.Vector3 para conveniência
type Vector3 = rl.Vector3

// O mundo do jogo é um plano quadrado centrado na origem.
// X = leste/oeste, Z = norte/sul, Y = eixo vertical (negativo = abaixo da superfície).
const (
	// WorldSize é o lado do plano do mundo em metros.
	WorldSize float32 = 4096.0

	// WorldHalf é a meia-extensão do mundo (distância do centro até a borda).
	WorldHalf float32 = WorldSize / 2

	// ChunkSize é o lado de um chunk de exploração em metros.
	ChunkSize float32 = 10.0

	// GridSize é o número de chunks por lado da grade (⌈4096/10⌉ = 410).
	GridSize int32 = 410

	// TotalChunks é o total de chunks endereçáveis por camada.
	TotalChunks int64 = int64(GridSize) * int64(GridSize)
)

// ChunkCoord representa a coordenada de um chunk na grade de exploração.
// CX cresce para leste, CZ cresce para o sul (linha da máscara cresce para baixo).
type ChunkCoord struct {
	CX, CZ int32
}

// String retorna a representação em string da coordenada.
func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.CX, c.CZ)
}

// WorldToChunk converte uma posição do mundo (x, z) para a coordenada do chunk.
// O eixo Z é invertido porque o norte cresce para cima no mapa renderizado,
// enquanto o índice de linha da máscara cresce para baixo.
// Posições fora do mundo são grampeadas na borda, nunca rejeitadas.
func WorldToChunk(x, z float32) ChunkCoord {
	cx := int32(math.Floor(float64((x + WorldHalf) / ChunkSize)))
	cz := int32(math.Floor(float64((WorldHalf - z) / ChunkSize)))
	return ChunkCoord{
		CX: Clamp(cx, 0, GridSize-1),
		CZ: Clamp(cz, 0, GridSize-1),
	}
}

// ChunkToWorld retorna o canto noroeste do chunk no espaço do mundo.
// Usado para desenhar a máscara de exploração.
func ChunkToWorld(c ChunkCoord) (x, z float32) {
	x = float32(c.CX)*ChunkSize - WorldHalf
	z = WorldHalf - float32(c.CZ)*ChunkSize
	return x, z
}

// ChunkKey é um inteiro de 64 bits que empacota (cx, cz) sem perdas.
type ChunkKey uint64

// PackChunkKey empacota a coordenada em uma chave única:
// 32 bits altos = CX, 32 bits baixos = CZ.
func PackChunkKey(c ChunkCoord) ChunkKey {
	return ChunkKey(uint64(uint32(c.CX))<<32 | uint64(uint32(c.CZ)))
}

// UnpackChunkKey desempacota a chave de volta para a coordenada.
// Invariante: UnpackChunkKey(PackChunkKey(c)) == c para toda a grade válida.
func UnpackChunkKey(k ChunkKey) ChunkCoord {
	return ChunkCoord{
		CX: int32(uint32(k >> 32)),
		CZ: int32(uint32(k)),
	}
}
