package light

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/chewxy/math32"
)

// lightConfig collects construction parameters for every light variant. Options
// that do not apply to a variant are ignored by its constructor.
type lightConfig struct {
	name         string
	position     [3]float32
	direction    [3]float32
	intensity    [3]float32
	radius       float32
	points       []geometry.PolarCoordinate
	rotation     [3]float32
	factory      geometry.MeshFactory
	tessellation int
}

// LightBuilderOption is a function that configures a light during construction.
type LightBuilderOption func(*lightConfig)

// newLightConfig applies options over the shared defaults.
func newLightConfig(options []LightBuilderOption) *lightConfig {
	r := math32.Sqrt(2) / 2
	cfg := &lightConfig{
		direction: [3]float32{0, -1, 0},
		intensity: [3]float32{1, 1, 1},
		radius:    1,
		points: []geometry.PolarCoordinate{
			{Radius: r, Angle: math32.Pi/4 + math32.Pi/2},
			{Radius: r, Angle: math32.Pi / 4},
			{Radius: r, Angle: math32.Pi/4 + math32.Pi},
		},
		rotation: [3]float32{0, 0, 90},
	}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.factory == nil {
		cfg.factory = geometry.NewMeshFactory()
	}
	return cfg
}

// base builds the shared light state for the given variant.
func (c *lightConfig) base(t LightType) lightBase {
	return lightBase{
		name:      c.name,
		lightType: t,
		position:  c.position,
		direction: c.direction,
		intensity: c.intensity,
	}
}

// WithName is an option builder that sets the light name.
//
// Parameters:
//   - name: the light name
//
// Returns:
//   - LightBuilderOption: a function that applies the name option
func WithName(name string) LightBuilderOption {
	return func(c *lightConfig) {
		c.name = name
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(c *lightConfig) {
		c.position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(c *lightConfig) {
		c.direction = common.Normalize3([3]float32{x, y, z})
	}
}

// WithIntensity is an option builder that sets the RGB intensity. For area lights
// this is the emitted radiance.
//
// Parameters:
//   - r: the red component
//   - g: the green component
//   - b: the blue component
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option
func WithIntensity(r, g, b float32) LightBuilderOption {
	return func(c *lightConfig) {
		c.intensity = [3]float32{r, g, b}
	}
}

// WithRadius sets the sphere area light radius. Default 1.
//
// Parameters:
//   - radius: the sphere radius
//
// Returns:
//   - LightBuilderOption: a function that applies the radius option
func WithRadius(radius float32) LightBuilderOption {
	return func(c *lightConfig) {
		c.radius = radius
	}
}

// WithControlPoints sets the polygonal area light footprint. Angles are in radians.
// The default is a triangle of radius √2/2.
//
// Parameters:
//   - points: the polar control points
//
// Returns:
//   - LightBuilderOption: a function that applies the control points option
func WithControlPoints(points ...geometry.PolarCoordinate) LightBuilderOption {
	return func(c *lightConfig) {
		c.points = slices.Clone(points)
	}
}

// WithRotation sets the polygonal area light rotation in degrees about X, Y and Z.
// The default is (0, 0, 90).
//
// Parameters:
//   - degrees: the Euler rotation
//
// Returns:
//   - LightBuilderOption: a function that applies the rotation option
func WithRotation(degrees [3]float32) LightBuilderOption {
	return func(c *lightConfig) {
		c.rotation = degrees
	}
}

// WithMeshFactory sets the factory used to synthesize area light geometry.
//
// Parameters:
//   - factory: the mesh factory
//
// Returns:
//   - LightBuilderOption: a function that applies the factory option
func WithMeshFactory(factory geometry.MeshFactory) LightBuilderOption {
	return func(c *lightConfig) {
		c.factory = factory
	}
}

// WithTessellation sets the sphere tessellation. 0 selects the factory default.
//
// Parameters:
//   - tessellation: number of vertical segments
//
// Returns:
//   - LightBuilderOption: a function that applies the tessellation option
func WithTessellation(tessellation int) LightBuilderOption {
	return func(c *lightConfig) {
		c.tessellation = tessellation
	}
}
