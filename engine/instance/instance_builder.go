package instance

// ObjectInstanceBuilderOption is a functional option for configuring an ObjectInstance during construction.
type ObjectInstanceBuilderOption func(*placement)

// WithName sets the display name of the instance.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - ObjectInstanceBuilderOption: functional option to set the name
func WithName(name string) ObjectInstanceBuilderOption {
	return func(p *placement) {
		p.name = name
	}
}

// WithTranslation sets the initial world-space translation.
//
// Parameters:
//   - t: the translation
//
// Returns:
//   - ObjectInstanceBuilderOption: functional option to set the translation
func WithTranslation(t [3]float32) ObjectInstanceBuilderOption {
	return func(p *placement) {
		p.translation = t
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - r: rotation about X, Y and Z
//
// Returns:
//   - ObjectInstanceBuilderOption: functional option to set the rotation
func WithRotation(r [3]float32) ObjectInstanceBuilderOption {
	return func(p *placement) {
		p.rotation = r
	}
}

// WithScale sets the initial scale factors.
//
// Parameters:
//   - s: the scale
//
// Returns:
//   - ObjectInstanceBuilderOption: functional option to set the scale
func WithScale(s [3]float32) ObjectInstanceBuilderOption {
	return func(p *placement) {
		p.scale = s
	}
}

// WithVisible sets whether the instance is drawn.
//
// Parameters:
//   - visible: true to draw
//
// Returns:
//   - ObjectInstanceBuilderOption: functional option to set visibility
func WithVisible(visible bool) ObjectInstanceBuilderOption {
	return func(p *placement) {
		p.visible = visible
	}
}
