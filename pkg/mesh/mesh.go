// Package mesh builds indexed triangle meshes and recomputes their normals.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Extent returns the largest distance from the origin to a box face,
// the radius of a centered sphere touching the box along its axes.
func (b Bounds) Extent() float32 {
	var e float32
	for i := 0; i < 3; i++ {
		e = max(e, -b.Min[i], b.Max[i])
	}
	return e
}

// ComputeBounds returns the bounding box of the given positions.
func ComputeBounds(positions []mgl32.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < b.Min[i] {
				b.Min[i] = p[i]
			}
			if p[i] > b.Max[i] {
				b.Max[i] = p[i]
			}
		}
	}
	return b
}

// ComputeNormals writes smooth per-vertex normals into dst by accumulating
// area-weighted face normals of every triangle sharing a vertex.
// dst must have the same length as positions; it is overwritten.
func ComputeNormals(dst, positions []mgl32.Vec3, indices []uint32) {
	for i := range dst {
		dst[i] = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[a], positions[b], positions[c]

		// Unnormalized cross product weights by triangle area.
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		dst[a] = dst[a].Add(face)
		dst[b] = dst[b].Add(face)
		dst[c] = dst[c].Add(face)
	}

	for i := range dst {
		if dst[i].Len() < 1e-12 {
			// Vertex not referenced by any face or fully degenerate.
			dst[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		dst[i] = dst[i].Normalize()
	}
}

// InterleavedStride is the number of floats per vertex written by
// Interleave.
const InterleavedStride = 6

// Interleave packs positions and normals as x,y,z,nx,ny,nz into dst,
// growing it only when it is too small. Returns the filled slice.
func Interleave(dst []float32, positions, normals []mgl32.Vec3) []float32 {
	n := len(positions) * InterleavedStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i, p := range positions {
		o := i * InterleavedStride
		dst[o], dst[o+1], dst[o+2] = p[0], p[1], p[2]
		if i < len(normals) {
			nv := normals[i]
			dst[o+3], dst[o+4], dst[o+5] = nv[0], nv[1], nv[2]
		}
	}
	return dst
}
