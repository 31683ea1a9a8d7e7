package path

import (
	"math"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// Keyframe is a placement at a point in time.
type Keyframe struct {
	Time     float64
	Position [3]float32
	Target   [3]float32
	Up       [3]float32
}

// Movable is anything a path can drive: cameras, lights and model instances.
type Movable interface {
	Move(position, target, up [3]float32)
}

type objectPath struct {
	name      string
	keyframes []Keyframe
	loop      bool
	smooth    bool
	objects   []Movable

	last    Keyframe
	hasLast bool
}

// ObjectPath is a keyframed animation that moves its attached objects.
// Keyframes are kept sorted by time.
type ObjectPath interface {
	// Name returns the path name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName renames the path.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// AddKeyframe inserts k in time order. A keyframe with the same time as an
	// existing one is inserted after it.
	//
	// Parameters:
	//   - k: the keyframe
	//
	// Returns:
	//   - int: the index of the inserted keyframe
	AddKeyframe(k Keyframe) int

	// KeyframeCount returns the number of keyframes.
	KeyframeCount() int

	// Keyframe returns keyframe i. Panics with *common.IndexOutOfRangeError if i
	// is out of range.
	//
	// Parameters:
	//   - i: the keyframe index
	//
	// Returns:
	//   - Keyframe: the keyframe
	Keyframe(i int) Keyframe

	// RemoveKeyframe deletes keyframe i. Panics with *common.IndexOutOfRangeError
	// if i is out of range.
	//
	// Parameters:
	//   - i: the keyframe index
	RemoveKeyframe(i int)

	// Duration returns the time between the first and last keyframe.
	//
	// Returns:
	//   - float64: the duration
	Duration() float64

	// Loop reports whether the path wraps around after the last keyframe.
	Loop() bool

	// SetLoop sets whether the path wraps around after the last keyframe.
	SetLoop(loop bool)

	// Smooth reports whether positions are interpolated with a Catmull-Rom spline
	// instead of linearly.
	Smooth() bool

	// SetSmooth selects spline or linear interpolation.
	SetSmooth(smooth bool)

	// AttachObject adds m to the objects moved by Animate. Attaching the same
	// object twice has no effect.
	//
	// Parameters:
	//   - m: the object to drive
	AttachObject(m Movable)

	// DetachObject stops driving m.
	//
	// Parameters:
	//   - m: the object to release
	DetachObject(m Movable)

	// AttachedObjectCount returns the number of driven objects.
	AttachedObjectCount() int

	// FrameAt evaluates the path at time t.
	//
	// Parameters:
	//   - t: the time
	//
	// Returns:
	//   - Keyframe: the interpolated placement, with Time set to t
	//   - bool: false if the path has no keyframes
	FrameAt(t float64) (Keyframe, bool)

	// Animate moves every attached object to the placement at currentTime.
	//
	// Parameters:
	//   - currentTime: the time
	//
	// Returns:
	//   - bool: true if the placement differs from the previous Animate call
	Animate(currentTime float64) bool
}

var _ ObjectPath = &objectPath{}

// NewObjectPath creates an empty path configured with the given options.
//
// Parameters:
//   - options: functional options to configure the path
//
// Returns:
//   - ObjectPath: the new path
func NewObjectPath(options ...ObjectPathBuilderOption) ObjectPath {
	p := &objectPath{}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *objectPath) Name() string {
	return p.name
}

func (p *objectPath) SetName(name string) {
	p.name = name
}

func (p *objectPath) AddKeyframe(k Keyframe) int {
	i, _ := slices.BinarySearchFunc(p.keyframes, k.Time, func(e Keyframe, t float64) int {
		if e.Time <= t {
			return -1
		}
		return 1
	})
	p.keyframes = slices.Insert(p.keyframes, i, k)
	p.hasLast = false
	return i
}

func (p *objectPath) KeyframeCount() int {
	return len(p.keyframes)
}

func (p *objectPath) Keyframe(i int) Keyframe {
	common.CheckIndex("path keyframes", i, len(p.keyframes))
	return p.keyframes[i]
}

func (p *objectPath) RemoveKeyframe(i int) {
	common.CheckIndex("path keyframes", i, len(p.keyframes))
	p.keyframes = slices.Delete(p.keyframes, i, i+1)
	p.hasLast = false
}

func (p *objectPath) Duration() float64 {
	if len(p.keyframes) < 2 {
		return 0
	}
	return p.keyframes[len(p.keyframes)-1].Time - p.keyframes[0].Time
}

func (p *objectPath) Loop() bool {
	return p.loop
}

func (p *objectPath) SetLoop(loop bool) {
	p.loop = loop
}

func (p *objectPath) Smooth() bool {
	return p.smooth
}

func (p *objectPath) SetSmooth(smooth bool) {
	p.smooth = smooth
}

func (p *objectPath) AttachObject(m Movable) {
	if slices.Contains(p.objects, m) {
		return
	}
	p.objects = append(p.objects, m)
	p.hasLast = false
}

func (p *objectPath) DetachObject(m Movable) {
	p.objects = slices.DeleteFunc(p.objects, func(o Movable) bool { return o == m })
}

func (p *objectPath) AttachedObjectCount() int {
	return len(p.objects)
}

func (p *objectPath) FrameAt(t float64) (Keyframe, bool) {
	n := len(p.keyframes)
	if n == 0 {
		return Keyframe{}, false
	}
	first, last := p.keyframes[0], p.keyframes[n-1]
	if n == 1 {
		first.Time = t
		return first, true
	}

	local := t
	if d := p.Duration(); p.loop && d > 0 {
		local = first.Time + math.Mod(t-first.Time, d)
		if local < first.Time {
			local += d
		}
	}
	if local <= first.Time {
		first.Time = t
		return first, true
	}
	if local >= last.Time {
		last.Time = t
		return last, true
	}

	// index of the first keyframe strictly after local
	hi, _ := slices.BinarySearchFunc(p.keyframes, local, func(e Keyframe, t float64) int {
		if e.Time <= t {
			return -1
		}
		return 1
	})
	lo := hi - 1
	a, b := p.keyframes[lo], p.keyframes[hi]
	u := float32((local - a.Time) / (b.Time - a.Time))

	frame := Keyframe{Time: t}
	if p.smooth {
		pa, pb := p.neighbour(lo-1), p.neighbour(hi+1)
		frame.Position = catmullRom(pa.Position, a.Position, b.Position, pb.Position, u)
		frame.Target = catmullRom(pa.Target, a.Target, b.Target, pb.Target, u)
	} else {
		frame.Position = common.Lerp3(a.Position, b.Position, u)
		frame.Target = common.Lerp3(a.Target, b.Target, u)
	}
	frame.Up = common.Normalize3(common.Lerp3(a.Up, b.Up, u))
	return frame, true
}

func (p *objectPath) Animate(currentTime float64) bool {
	if len(p.objects) == 0 {
		return false
	}
	frame, ok := p.FrameAt(currentTime)
	if !ok {
		return false
	}
	if p.hasLast && samePlacement(frame, p.last) {
		return false
	}
	for _, o := range p.objects {
		o.Move(frame.Position, frame.Target, frame.Up)
	}
	p.last, p.hasLast = frame, true
	return true
}

// neighbour returns keyframe i, wrapping for looping paths and clamping otherwise.
func (p *objectPath) neighbour(i int) Keyframe {
	n := len(p.keyframes)
	if p.loop {
		return p.keyframes[((i%n)+n)%n]
	}
	return p.keyframes[min(max(i, 0), n-1)]
}

func samePlacement(a, b Keyframe) bool {
	return a.Position == b.Position && a.Target == b.Target && a.Up == b.Up
}

// catmullRom evaluates the uniform Catmull-Rom segment between p1 and p2.
func catmullRom(p0, p1, p2, p3 [3]float32, t float32) [3]float32 {
	t2, t3 := t*t, t*t*t
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = 0.5 * (2*p1[i] +
			(-p0[i]+p2[i])*t +
			(2*p0[i]-5*p1[i]+4*p2[i]-p3[i])*t2 +
			(-p0[i]+3*p1[i]-3*p2[i]+p3[i])*t3)
	}
	return out
}
