package scene

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene name. Defaults to "scene_<id>".
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithAmbientIntensity sets the ambient light color.
//
// Parameters:
//   - rgb: the ambient color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientIntensity(rgb [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambientIntensity = rgb
	}
}

// WithLightingScale sets the global light multiplier. Defaults to 1.
//
// Parameters:
//   - scale: the multiplier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightingScale(scale float32) SceneBuilderOption {
	return func(s *scene) {
		s.lightingScale = scale
	}
}

// WithCameraSpeed sets the speed scale pushed to camera controllers. Defaults to 1.
//
// Parameters:
//   - speed: the speed scale
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraSpeed(speed float32) SceneBuilderOption {
	return func(s *scene) {
		s.cameraSpeed = speed
	}
}

// WithExtentWorkers sets how many workers the bounding sphere recompute may use.
// Values below 2 keep the recompute on the calling goroutine.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithExtentWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		s.extentWorkers = workers
	}
}

// WithLoadFlags records the flags the scene is loaded with.
func WithLoadFlags(flags LoadFlags) SceneBuilderOption {
	return func(s *scene) {
		s.loadFlags = flags
	}
}

// WithVersion sets the scene format version.
func WithVersion(version uint32) SceneBuilderOption {
	return func(s *scene) {
		s.version = version
	}
}

// WithCameras adds initial cameras. The first one becomes active.
//
// Parameters:
//   - cameras: the cameras to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameras(cameras ...camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		for _, c := range cameras {
			s.AddCamera(c)
		}
	}
}

// WithLights adds initial lights. Area lights are not attached.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			s.AddLight(l)
		}
	}
}
