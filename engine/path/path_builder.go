package path

// ObjectPathBuilderOption is a functional option for configuring an ObjectPath during construction.
type ObjectPathBuilderOption func(*objectPath)

// WithName sets the path name.
//
// Parameters:
//   - name: the path name
//
// Returns:
//   - ObjectPathBuilderOption: functional option to set the name
func WithName(name string) ObjectPathBuilderOption {
	return func(p *objectPath) {
		p.name = name
	}
}

// WithKeyframes adds keyframes in time order.
//
// Parameters:
//   - keyframes: the keyframes to add
//
// Returns:
//   - ObjectPathBuilderOption: functional option to add keyframes
func WithKeyframes(keyframes ...Keyframe) ObjectPathBuilderOption {
	return func(p *objectPath) {
		for _, k := range keyframes {
			p.AddKeyframe(k)
		}
	}
}

// WithLoop makes the path wrap around after the last keyframe.
func WithLoop(loop bool) ObjectPathBuilderOption {
	return func(p *objectPath) {
		p.loop = loop
	}
}

// WithSmooth selects Catmull-Rom interpolation of positions and targets.
func WithSmooth(smooth bool) ObjectPathBuilderOption {
	return func(p *objectPath) {
		p.smooth = smooth
	}
}

// WithObjects attaches objects for the path to drive.
//
// Parameters:
//   - objects: the objects to drive
//
// Returns:
//   - ObjectPathBuilderOption: functional option to attach objects
func WithObjects(objects ...Movable) ObjectPathBuilderOption {
	return func(p *objectPath) {
		for _, o := range objects {
			p.AttachObject(o)
		}
	}
}
