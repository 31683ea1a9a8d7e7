package geometry

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

// Vertex is a single position/normal/texcoord vertex produced by a MeshFactory.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// MeshData is a vertex buffer plus a triangle-list index buffer.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns a zero box.
//
// Returns:
//   - min: the minimum corner
//   - max: the maximum corner
func (m *MeshData) Bounds() (min, max [3]float32) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			min[i] = math32.Min(min[i], v.Position[i])
			max[i] = math32.Max(max[i], v.Position[i])
		}
	}
	return
}

// SurfaceArea sums the area of every triangle after transforming its corners by
// transform. A nil transform measures the mesh in its local space.
//
// Parameters:
//   - transform: optional column-major world transform (16 elements)
//
// Returns:
//   - float32: the total triangle area
func (m *MeshData) SurfaceArea(transform []float32) float32 {
	var area float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		if transform != nil {
			a = common.TransformPoint(transform, a)
			b = common.TransformPoint(transform, b)
			c = common.TransformPoint(transform, c)
		}
		area += 0.5 * common.Length3(common.Cross3(common.Sub3(b, a), common.Sub3(c, a)))
	}
	return area
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}
