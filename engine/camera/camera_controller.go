package camera

// CameraController owns a camera placement and exposes orbit and planar
// navigation around a target point. A Camera reads Position and Target from its
// controller on every Update.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera directly. The orbit radius, azimuth and
	// elevation are re-derived from the offset to the target, clamped to bounds.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SpeedScale returns the multiplier applied to every orbit, zoom and pan step.
	//
	// Returns:
	//   - float32: the speed multiplier
	SpeedScale() float32

	// SetSpeedScale sets the multiplier applied to every orbit, zoom and pan step.
	// Scenes use this to apply their camera speed setting.
	//
	// Parameters:
	//   - scale: the speed multiplier
	SetSpeedScale(scale float32)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Orbit rotates the camera around the target by the given number of orbit
	// steps. Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - azimuthSteps: horizontal steps, positive turns right
	//   - elevationSteps: vertical steps, positive tilts up
	Orbit(azimuthSteps, elevationSteps float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// Pan translates position and target together along the camera's local
	// right, up and forward axes, preserving the orbit relationship.
	//
	// Parameters:
	//   - right, up, forward: pan amounts scaled by PanSpeed
	Pan(right, up, forward float32)
}
