package instance

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

var (
	// instanceCount generates process-unique instance IDs.
	instanceCount atomic.Uint64

	// transformEpoch is bumped on every transform change of any instance. Holders
	// of derived data (such as a scene's bounding sphere) compare against it to
	// detect that some placement moved.
	transformEpoch atomic.Uint64
)

// TransformEpoch returns the current global transform epoch. The value increases
// whenever any ObjectInstance changes its translation, rotation or scale.
//
// Returns:
//   - uint64: the epoch
func TransformEpoch() uint64 {
	return transformEpoch.Load()
}

// placement holds the transform state shared by every ObjectInstance regardless
// of the referenced object type.
type placement struct {
	id          uint64
	name        string
	visible     bool
	translation [3]float32
	rotation    [3]float32
	scale       [3]float32
	transform   [16]float32
	dirty       bool
}

type objectInstance[T any] struct {
	placement
	object T
}

// ObjectInstance is a named placement of a shared object. Many instances may
// reference one object. The world transform is derived from translation,
// rotation (radians about X, Y and Z, applied Y * X * Z) and scale, and is
// recomputed on read after any component changes.
type ObjectInstance[T any] interface {
	// ID returns the process-unique instance identifier.
	//
	// Returns:
	//   - uint64: the instance ID
	ID() uint64

	// Object returns the shared object this instance places.
	//
	// Returns:
	//   - T: the object
	Object() T

	// Name returns the instance display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the instance display name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Visible reports whether the instance should be drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible sets whether the instance should be drawn.
	//
	// Parameters:
	//   - visible: true to draw
	SetVisible(visible bool)

	// Translation returns the world-space translation.
	//
	// Returns:
	//   - [3]float32: the translation
	Translation() [3]float32

	// SetTranslation sets the world-space translation.
	//
	// Parameters:
	//   - x, y, z: translation components
	SetTranslation(x, y, z float32)

	// Rotation returns the Euler rotation in radians about X, Y and Z.
	//
	// Returns:
	//   - [3]float32: the rotation
	Rotation() [3]float32

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation about X, Y and Z
	SetRotation(rx, ry, rz float32)

	// Scale returns the scale factors.
	//
	// Returns:
	//   - [3]float32: the scale
	Scale() [3]float32

	// SetScale sets the scale factors. Values are not validated.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// TransformMatrix returns the column-major world transform, recomputing it if
	// any component changed since the last read.
	//
	// Returns:
	//   - [16]float32: the world transform
	TransformMatrix() [16]float32

	// Move places the instance at position facing target. The yaw and pitch are
	// derived from the view direction and the roll is reset; up is accepted for
	// symmetry with other movable objects and only used when position and target
	// coincide, in which case the rotation is left unchanged.
	//
	// Parameters:
	//   - position: the new translation
	//   - target: the point to face
	//   - up: the up vector
	Move(position, target, up [3]float32)
}

var _ ObjectInstance[int] = &objectInstance[int]{}

// NewObjectInstance creates an instance of object configured with the given options.
// The default placement is the identity transform.
//
// Parameters:
//   - object: the shared object to place
//   - options: functional options to configure the instance
//
// Returns:
//   - ObjectInstance[T]: the new instance
func NewObjectInstance[T any](object T, options ...ObjectInstanceBuilderOption) ObjectInstance[T] {
	inst := &objectInstance[T]{
		placement: placement{
			id:      instanceCount.Add(1),
			visible: true,
			scale:   [3]float32{1, 1, 1},
			dirty:   true,
		},
		object: object,
	}
	for _, option := range options {
		option(&inst.placement)
	}
	return inst
}

func (o *objectInstance[T]) Object() T {
	return o.object
}

func (p *placement) ID() uint64 {
	return p.id
}

func (p *placement) Name() string {
	return p.name
}

func (p *placement) SetName(name string) {
	p.name = name
}

func (p *placement) Visible() bool {
	return p.visible
}

func (p *placement) SetVisible(visible bool) {
	p.visible = visible
}

func (p *placement) Translation() [3]float32 {
	return p.translation
}

func (p *placement) SetTranslation(x, y, z float32) {
	p.translation = [3]float32{x, y, z}
	p.invalidate()
}

func (p *placement) Rotation() [3]float32 {
	return p.rotation
}

func (p *placement) SetRotation(rx, ry, rz float32) {
	p.rotation = [3]float32{rx, ry, rz}
	p.invalidate()
}

func (p *placement) Scale() [3]float32 {
	return p.scale
}

func (p *placement) SetScale(sx, sy, sz float32) {
	p.scale = [3]float32{sx, sy, sz}
	p.invalidate()
}

func (p *placement) TransformMatrix() [16]float32 {
	if p.dirty {
		common.BuildModelMatrix(p.transform[:],
			p.translation[0], p.translation[1], p.translation[2],
			p.rotation[0], p.rotation[1], p.rotation[2],
			p.scale[0], p.scale[1], p.scale[2],
		)
		p.dirty = false
	}
	return p.transform
}

func (p *placement) Move(position, target, up [3]float32) {
	p.translation = position
	dir := common.Sub3(target, position)
	if l := common.Length3(dir); l > 0 {
		dir = common.Scale3(dir, 1/l)
		yaw := math32.Atan2(dir[0], dir[2])
		pitch := math32.Asin(-dir[1])
		p.rotation = [3]float32{pitch, yaw, 0}
	}
	p.invalidate()
}

// invalidate marks the cached transform stale and bumps the global epoch.
func (p *placement) invalidate() {
	p.dirty = true
	transformEpoch.Add(1)
}
