package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Icosphere builds a sphere by recursively subdividing an icosahedron.
// Vertices are shared between faces, so each subdivision level s yields
// 10*4^s + 2 vertices and 20*4^s triangles. Winding is counter-clockwise
// seen from outside.
func Icosphere(radius float32, subdivisions int) *Mesh {
	t := float32((1.0 + math.Sqrt(5.0)) / 2.0)

	positions := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}

	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for i := range positions {
		positions[i] = positions[i].Normalize()
	}

	for i := 0; i < subdivisions; i++ {
		positions, indices = subdivide(positions, indices)
	}

	normals := make([]mgl32.Vec3, len(positions))
	for i := range positions {
		n := positions[i].Normalize()
		normals[i] = n
		positions[i] = n.Mul(radius)
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
	}
}

// subdivide splits every triangle into four, sharing edge midpoints.
func subdivide(positions []mgl32.Vec3, indices []uint32) ([]mgl32.Vec3, []uint32) {
	midpoints := make(map[[2]uint32]uint32, len(indices))
	out := make([]uint32, 0, len(indices)*4)

	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		// Project onto the unit sphere right away so later levels stay round.
		mid := positions[a].Add(positions[b]).Mul(0.5).Normalize()
		positions = append(positions, mid)
		idx := uint32(len(positions) - 1)
		midpoints[key] = idx
		return idx
	}

	for i := 0; i+2 < len(indices); i += 3 {
		v1, v2, v3 := indices[i], indices[i+1], indices[i+2]
		m1 := midpoint(v1, v2)
		m2 := midpoint(v2, v3)
		m3 := midpoint(v3, v1)
		out = append(out,
			v1, m1, m3,
			v2, m2, m1,
			v3, m3, m2,
			m1, m2, m3,
		)
	}

	return positions, out
}
