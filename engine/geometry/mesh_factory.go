package geometry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

var (
	// ErrTooFewControlPoints is returned when a polygonal plane is requested with
	// fewer than two control points.
	ErrTooFewControlPoints = errors.New("geometry: polygonal plane needs at least 2 control points")

	// ErrTessellationOutOfRange is returned when a sphere tessellation below 3 is requested.
	ErrTessellationOutOfRange = errors.New("geometry: tessellation out of range")
)

// PolarCoordinate is a 2-D control point on the local X/Z plane expressed as a
// distance from the origin and an angle in radians.
type PolarCoordinate struct {
	Radius float32
	Angle  float32
}

// meshFactory is the implementation of the MeshFactory interface.
type meshFactory struct {
	rightHanded         bool
	defaultTessellation int
	invertSphereNormals bool
}

// MeshFactory produces triangle meshes for primitive shapes. Errors returned by a
// MeshFactory are propagated unchanged by the scene and light packages.
type MeshFactory interface {
	// Sphere builds a UV sphere centered at the origin.
	//
	// Parameters:
	//   - diameter: the sphere diameter
	//   - tessellation: number of vertical segments (must be >= 3); 0 selects the factory default
	//
	// Returns:
	//   - *MeshData: the generated mesh
	//   - error: ErrTessellationOutOfRange if tessellation is below 3
	Sphere(diameter float32, tessellation int) (*MeshData, error)

	// PolygonalPlane builds a triangle fan on the local X/Z plane from polar control
	// points. Points are sorted by angle (wrapped to [0, 2π)) in descending order and
	// fanned around the origin; every vertex is then transformed by transform and the
	// +Y normal by its inverse transpose.
	//
	// Parameters:
	//   - points: the polar control points (at least 2)
	//   - transform: column-major transform applied to every vertex
	//
	// Returns:
	//   - *MeshData: the generated mesh
	//   - error: ErrTooFewControlPoints if fewer than 2 points are supplied
	PolygonalPlane(points []PolarCoordinate, transform [16]float32) (*MeshData, error)

	// Box builds an axis-aligned box centered at the origin.
	//
	// Parameters:
	//   - size: the full extent along each axis
	//
	// Returns:
	//   - *MeshData: the generated mesh
	//   - error: always nil for the default factory
	Box(size [3]float32) (*MeshData, error)

	// DefaultTessellation returns the tessellation used when Sphere is called with 0.
	//
	// Returns:
	//   - int: the default tessellation
	DefaultTessellation() int
}

var _ MeshFactory = &meshFactory{}

// NewMeshFactory creates a MeshFactory configured with the given options.
//
// Parameters:
//   - options: functional options to configure the factory
//
// Returns:
//   - MeshFactory: the newly created factory
func NewMeshFactory(options ...MeshFactoryBuilderOption) MeshFactory {
	f := &meshFactory{
		rightHanded:         true,
		defaultTessellation: 16,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *meshFactory) DefaultTessellation() int {
	return f.defaultTessellation
}

func (f *meshFactory) Sphere(diameter float32, tessellation int) (*MeshData, error) {
	if tessellation == 0 {
		tessellation = f.defaultTessellation
	}
	if tessellation < 3 {
		return nil, fmt.Errorf("sphere tessellation %d: %w", tessellation, ErrTessellationOutOfRange)
	}

	vertical := tessellation
	horizontal := tessellation * 2
	radius := diameter / 2

	mesh := &MeshData{
		Vertices: make([]Vertex, 0, (vertical+1)*(horizontal+1)),
		Indices:  make([]uint32, 0, vertical*(horizontal+1)*6),
	}

	for i := 0; i <= vertical; i++ {
		v := 1 - float32(i)/float32(vertical)
		latitude := float32(i)*math32.Pi/float32(vertical) - math32.Pi/2
		dy, dxz := math32.Sincos(latitude)

		for j := 0; j <= horizontal; j++ {
			u := float32(j) / float32(horizontal)
			longitude := float32(j) * 2 * math32.Pi / float32(horizontal)
			dx, dz := math32.Sincos(longitude)
			normal := [3]float32{dx * dxz, dy, dz * dxz}
			if f.invertSphereNormals {
				normal = common.Scale3(normal, -1)
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{dx * dxz * radius, dy * radius, dz * dxz * radius},
				Normal:   normal,
				TexCoord: [2]float32{1 - u, v},
			})
		}
	}

	stride := horizontal + 1
	for i := 0; i < vertical; i++ {
		for j := 0; j <= horizontal; j++ {
			next := i + 1
			nextJ := (j + 1) % stride
			f.appendTriangle(mesh, uint32(i*stride+j), uint32(next*stride+j), uint32(i*stride+nextJ))
			f.appendTriangle(mesh, uint32(i*stride+nextJ), uint32(next*stride+j), uint32(next*stride+nextJ))
		}
	}
	return mesh, nil
}

func (f *meshFactory) PolygonalPlane(points []PolarCoordinate, transform [16]float32) (*MeshData, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("polygonal plane with %d points: %w", len(points), ErrTooFewControlPoints)
	}

	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b PolarCoordinate) int {
		ta, tb := wrapAngle(a.Angle), wrapAngle(b.Angle)
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})

	var normalMatrix [16]float32
	if common.Invert4(normalMatrix[:], transform[:]) {
		common.Transpose4(normalMatrix[:], normalMatrix[:])
	} else {
		normalMatrix = transform
	}
	normal := common.Normalize3(common.TransformDirection(normalMatrix[:], [3]float32{0, 1, 0}))

	mesh := &MeshData{
		Vertices: make([]Vertex, 0, len(sorted)+1),
		Indices:  make([]uint32, 0, (len(sorted)-1)*3),
	}
	mesh.Vertices = append(mesh.Vertices, Vertex{
		Position: common.TransformPoint(transform[:], [3]float32{}),
		Normal:   normal,
	})
	for _, pt := range sorted {
		s, c := math32.Sincos(pt.Angle)
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: common.TransformPoint(transform[:], [3]float32{pt.Radius * c, 0, pt.Radius * s}),
			Normal:   normal,
		})
	}
	for face := 0; face < len(sorted)-1; face++ {
		mesh.Indices = append(mesh.Indices, 0, uint32(face+1), uint32(face+2))
	}
	return mesh, nil
}

func (f *meshFactory) Box(size [3]float32) (*MeshData, error) {
	faceNormals := [6][3]float32{
		{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}
	texCoords := [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}}
	half := common.Scale3(size, 0.5)

	mesh := &MeshData{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, n := range faceNormals {
		side1 := [3]float32{n[1], n[2], n[0]}
		side2 := common.Cross3(n, side1)
		base := uint32(len(mesh.Vertices))

		f.appendTriangle(mesh, base, base+1, base+2)
		f.appendTriangle(mesh, base, base+2, base+3)

		corners := [4][3]float32{
			common.Sub3(common.Sub3(n, side1), side2),
			common.Add3(common.Sub3(n, side1), side2),
			common.Add3(common.Add3(n, side1), side2),
			common.Sub3(common.Add3(n, side1), side2),
		}
		for i, c := range corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{c[0] * half[0], c[1] * half[1], c[2] * half[2]},
				Normal:   n,
				TexCoord: texCoords[i],
			})
		}
	}
	return mesh, nil
}

// appendTriangle appends one triangle, flipping the winding for right-handed output.
func (f *meshFactory) appendTriangle(mesh *MeshData, a, b, c uint32) {
	if f.rightHanded {
		mesh.Indices = append(mesh.Indices, a, c, b)
		return
	}
	mesh.Indices = append(mesh.Indices, a, b, c)
}

// wrapAngle wraps theta into [0, 2π).
func wrapAngle(theta float32) float32 {
	theta = math32.Mod(theta, 2*math32.Pi)
	if theta < 0 {
		theta += 2 * math32.Pi
	}
	return theta
}
