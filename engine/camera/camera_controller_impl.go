package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the orbit implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; Pan
// translates both position and target along local camera axes.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
	panSpeed   float32
	speedScale float32
}

var _ CameraController = &cameraControllerImpl{}

// NewOrbitController creates a new orbit camera controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		radius:    10.0,
		elevation: math32.Pi / 6,

		minRadius:    0.1,
		maxRadius:    2000.0,
		minElevation: -(math32.Pi/2 - 0.1),
		maxElevation: math32.Pi/2 - 0.1,

		orbitSpeed: 0.03,
		zoomSpeed:  1.0,
		panSpeed:   1.0,
		speedScale: 1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)
	cc.position = common.Add3(cc.target, common.Scale3([3]float32{cosElev * sinAzim, sinElev, cosElev * cosAzim}, cc.radius))
}

// localAxes computes the camera's local axes consistent with the LookAt matrix.
// All axes are zero if position and target coincide. Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward [3]float32) {
	backward := common.Sub3(cc.position, cc.target)
	if common.Length3(backward) < 1e-8 {
		return
	}
	backward = common.Normalize3(backward)
	right = common.Cross3([3]float32{0, 1, 0}, backward)
	if common.Length3(right) < 1e-8 {
		return [3]float32{}, [3]float32{}, common.Scale3(backward, -1)
	}
	right = common.Normalize3(right)
	up = common.Cross3(backward, right)
	forward = common.Scale3(backward, -1)
	return
}

func (cc *cameraControllerImpl) clampRadius() {
	cc.radius = math32.Min(math32.Max(cc.radius, cc.minRadius), cc.maxRadius)
}

func (cc *cameraControllerImpl) clampElevation() {
	cc.elevation = math32.Min(math32.Max(cc.elevation, cc.minElevation), cc.maxElevation)
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	offset := common.Sub3([3]float32{x, y, z}, cc.target)
	cc.radius = common.Length3(offset)
	if cc.radius > 0 {
		cc.azimuth = math32.Atan2(offset[0], offset[2])
		cc.elevation = math32.Asin(offset[1] / cc.radius)
	}
	cc.clampRadius()
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SpeedScale() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speedScale
}

func (cc *cameraControllerImpl) SetSpeedScale(scale float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speedScale = scale
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed * cc.speedScale
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(azimuthSteps, elevationSteps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	step := cc.orbitSpeed * cc.speedScale
	cc.azimuth += azimuthSteps * step
	cc.elevation += elevationSteps * step
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) Pan(right, up, forward float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	r, u, f := cc.localAxes()
	scale := cc.panSpeed * cc.speedScale
	offset := common.Add3(common.Add3(common.Scale3(r, right*scale), common.Scale3(u, up*scale)), common.Scale3(f, forward*scale))

	cc.target = common.Add3(cc.target, offset)
	cc.position = common.Add3(cc.position, offset)
}
