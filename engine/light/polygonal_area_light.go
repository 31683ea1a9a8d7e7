package light

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
)

type polygonalAreaLight struct {
	areaLight
	points   []geometry.PolarCoordinate
	rotation [3]float32 // degrees
}

// PolygonalAreaLight is a flat area light whose footprint is a convex polygon
// given as polar control points on the local X/Z plane.
type PolygonalAreaLight interface {
	AreaLight

	// ControlPoints returns a copy of the polar control points.
	//
	// Returns:
	//   - []geometry.PolarCoordinate: the control points
	ControlPoints() []geometry.PolarCoordinate

	// SetControlPoints replaces the footprint and rebuilds the emitter. A list
	// epsilon-equal to the current one is a no-op.
	//
	// Parameters:
	//   - points: the new control points (at least 2)
	//
	// Returns:
	//   - error: geometry.ErrTooFewControlPoints or a mesh factory error
	SetControlPoints(points []geometry.PolarCoordinate) error

	// SetControlPoint replaces control point i. Panics with
	// *common.IndexOutOfRangeError if i is out of range.
	//
	// Parameters:
	//   - i: the control point index
	//   - p: the new control point
	//
	// Returns:
	//   - error: a mesh factory error
	SetControlPoint(i int, p geometry.PolarCoordinate) error

	// InsertControlPoint inserts p before index i; i == count appends.
	//
	// Parameters:
	//   - i: the insertion index in [0, count]
	//   - p: the control point
	//
	// Returns:
	//   - error: a mesh factory error
	InsertControlPoint(i int, p geometry.PolarCoordinate) error

	// RemoveControlPoint removes control point i.
	//
	// Parameters:
	//   - i: the control point index
	//
	// Returns:
	//   - error: geometry.ErrTooFewControlPoints if fewer than 2 would remain
	RemoveControlPoint(i int) error

	// Rotation returns the emitter rotation in degrees about X, Y and Z.
	//
	// Returns:
	//   - [3]float32: the rotation
	Rotation() [3]float32

	// SetRotation changes the emitter rotation and rebuilds it. A rotation
	// epsilon-equal to the current one is a no-op.
	//
	// Parameters:
	//   - degrees: the new rotation
	//
	// Returns:
	//   - error: a mesh factory error
	SetRotation(degrees [3]float32) error
}

var _ PolygonalAreaLight = &polygonalAreaLight{}

// NewPolygonalAreaLight creates a detached polygonal area light. Defaults: a
// triangle of radius √2/2, rotation (0, 0, 90) degrees, white radiance.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - PolygonalAreaLight: the new light
//   - error: geometry.ErrTooFewControlPoints or a mesh factory error
func NewPolygonalAreaLight(options ...LightBuilderOption) (PolygonalAreaLight, error) {
	cfg := newLightConfig(options)
	if err := checkControlPoints(len(cfg.points)); err != nil {
		return nil, err
	}
	l := &polygonalAreaLight{points: cfg.points, rotation: cfg.rotation}
	if err := l.init(cfg, LightTypePolygonalArea, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *polygonalAreaLight) ControlPoints() []geometry.PolarCoordinate {
	return slices.Clone(l.points)
}

func (l *polygonalAreaLight) SetControlPoints(points []geometry.PolarCoordinate) error {
	if err := checkControlPoints(len(points)); err != nil {
		return err
	}
	if slices.EqualFunc(points, l.points, pointsEqual) {
		return nil
	}
	return l.updatePoints(slices.Clone(points))
}

func (l *polygonalAreaLight) SetControlPoint(i int, p geometry.PolarCoordinate) error {
	common.CheckIndex("polygon control points", i, len(l.points))
	if pointsEqual(p, l.points[i]) {
		return nil
	}
	points := slices.Clone(l.points)
	points[i] = p
	return l.updatePoints(points)
}

func (l *polygonalAreaLight) InsertControlPoint(i int, p geometry.PolarCoordinate) error {
	common.CheckIndex("polygon control points", i, len(l.points)+1)
	return l.updatePoints(slices.Insert(slices.Clone(l.points), i, p))
}

func (l *polygonalAreaLight) RemoveControlPoint(i int) error {
	common.CheckIndex("polygon control points", i, len(l.points))
	if err := checkControlPoints(len(l.points) - 1); err != nil {
		return err
	}
	return l.updatePoints(slices.Delete(slices.Clone(l.points), i, i+1))
}

func (l *polygonalAreaLight) Rotation() [3]float32 {
	return l.rotation
}

func (l *polygonalAreaLight) SetRotation(degrees [3]float32) error {
	if vec3Equal(degrees, l.rotation) {
		return nil
	}
	old := l.rotation
	l.rotation = degrees
	if err := l.rebuild(); err != nil {
		l.rotation = old
		return err
	}
	return nil
}

func (l *polygonalAreaLight) SetPosition(p [3]float32) {
	l.position = p
	if l.inst != nil {
		l.inst.SetTranslation(p[0], p[1], p[2])
	}
}

// Move passes the placement to the emitter instance and keeps the stored
// rotation in sync so later rebuilds preserve the orientation.
func (l *polygonalAreaLight) Move(position, target, up [3]float32) {
	l.position = position
	if l.inst == nil {
		return
	}
	l.inst.Move(position, target, up)
	r := l.inst.Rotation()
	l.rotation = [3]float32{common.Degrees(r[0]), common.Degrees(r[1]), common.Degrees(r[2])}
}

func (l *polygonalAreaLight) updatePoints(points []geometry.PolarCoordinate) error {
	old := l.points
	l.points = points
	if err := l.rebuild(); err != nil {
		l.points = old
		return err
	}
	return nil
}

func (l *polygonalAreaLight) buildMesh(f geometry.MeshFactory) (*geometry.MeshData, error) {
	return f.PolygonalPlane(l.points, common.IdentityMatrix())
}

func (l *polygonalAreaLight) placeInstance(inst instance.ObjectInstance[model.Model]) {
	inst.SetTranslation(l.position[0], l.position[1], l.position[2])
	inst.SetRotation(common.Radians(l.rotation[0]), common.Radians(l.rotation[1]), common.Radians(l.rotation[2]))
}

func (l *polygonalAreaLight) shapeArea(data *geometry.MeshData) float32 {
	return data.SurfaceArea(nil)
}

func checkControlPoints(n int) error {
	if n < 2 {
		return fmt.Errorf("polygonal area light with %d control points: %w", n, geometry.ErrTooFewControlPoints)
	}
	return nil
}

func pointsEqual(a, b geometry.PolarCoordinate) bool {
	return common.EpsilonEqual(a.Radius, b.Radius, common.Epsilon) &&
		common.EpsilonEqual(a.Angle, b.Angle, common.Epsilon)
}

func vec3Equal(a, b [3]float32) bool {
	return common.EpsilonEqual(a[0], b[0], common.Epsilon) &&
		common.EpsilonEqual(a[1], b[1], common.Epsilon) &&
		common.EpsilonEqual(a[2], b[2], common.Epsilon)
}
