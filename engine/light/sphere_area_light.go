package light

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/chewxy/math32"
)

type sphereAreaLight struct {
	areaLight
	radius       float32
	tessellation int
}

// SphereAreaLight is a spherical area light. Its emitter is a generated sphere of
// diameter 2×radius centered on the light position.
type SphereAreaLight interface {
	AreaLight

	// Radius returns the sphere radius.
	//
	// Returns:
	//   - float32: the radius
	Radius() float32

	// SetRadius changes the radius and rebuilds the emitter. A value epsilon-equal
	// to the current radius is a no-op.
	//
	// Parameters:
	//   - r: the new radius
	//
	// Returns:
	//   - error: the mesh factory error, in which case the radius is unchanged
	SetRadius(r float32) error
}

var _ SphereAreaLight = &sphereAreaLight{}

// NewSphereAreaLight creates a detached sphere area light. Defaults: radius 1,
// position at the origin, white radiance.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - SphereAreaLight: the new light
//   - error: the mesh factory error if the emitter could not be generated
func NewSphereAreaLight(options ...LightBuilderOption) (SphereAreaLight, error) {
	cfg := newLightConfig(options)
	l := &sphereAreaLight{radius: cfg.radius, tessellation: cfg.tessellation}
	if err := l.init(cfg, LightTypeSphereArea, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *sphereAreaLight) Radius() float32 {
	return l.radius
}

func (l *sphereAreaLight) SetRadius(r float32) error {
	if common.EpsilonEqual(r, l.radius, common.Epsilon) {
		return nil
	}
	old := l.radius
	l.radius = r
	if err := l.rebuild(); err != nil {
		l.radius = old
		return err
	}
	return nil
}

func (l *sphereAreaLight) SetPosition(p [3]float32) {
	l.position = p
	if l.inst != nil {
		l.placeInstance(l.inst)
	}
}

// Move places the sphere at position. A sphere has no meaningful orientation, so
// target and up are ignored.
func (l *sphereAreaLight) Move(position, target, up [3]float32) {
	l.SetPosition(position)
}

func (l *sphereAreaLight) buildMesh(f geometry.MeshFactory) (*geometry.MeshData, error) {
	return f.Sphere(2*l.radius, l.tessellation)
}

func (l *sphereAreaLight) placeInstance(inst instance.ObjectInstance[model.Model]) {
	inst.Move(l.position, common.Add3(l.position, [3]float32{0, 0, 1}), [3]float32{0, 1, 0})
}

func (l *sphereAreaLight) shapeArea(*geometry.MeshData) float32 {
	return 4 * math32.Pi * l.radius * l.radius
}
