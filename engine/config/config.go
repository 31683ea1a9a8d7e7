package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a config file whose extension is neither
// TOML nor YAML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Format is a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// SceneConfig holds the defaults a scene is created with.
type SceneConfig struct {
	Name               string     `toml:"name" yaml:"name"`
	AmbientIntensity   [3]float32 `toml:"ambient_intensity" yaml:"ambient_intensity"`
	LightingScale      float32    `toml:"lighting_scale" yaml:"lighting_scale"`
	CameraSpeed        float32    `toml:"camera_speed" yaml:"camera_speed"`
	ExtentWorkers      int        `toml:"extent_workers" yaml:"extent_workers"`
	SphereTessellation int        `toml:"sphere_tessellation" yaml:"sphere_tessellation"`
	LoadFlags          string     `toml:"load_flags" yaml:"load_flags"`
	Version            uint32     `toml:"version" yaml:"version"`
}

// Default returns the configuration matching a scene built without options.
//
// Returns:
//   - SceneConfig: the defaults
func Default() SceneConfig {
	return SceneConfig{
		LightingScale:      1,
		CameraSpeed:        1,
		SphereTessellation: 16,
		LoadFlags:          scene.LoadFlagsNone.String(),
	}
}

// FormatFromPath picks the encoding from the file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the encoding
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
}

// Load reads a SceneConfig from a TOML or YAML file. Fields missing from the
// file keep their Default values.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - SceneConfig: the loaded configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (SceneConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return SceneConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format over the defaults and validates it.
//
// Parameters:
//   - data: the encoded configuration
//   - format: the encoding
//
// Returns:
//   - SceneConfig: the decoded configuration
//   - error: a decode or validation error
func Decode(data []byte, format Format) (SceneConfig, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return SceneConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
//
// Parameters:
//   - format: the encoding
//
// Returns:
//   - []byte: the encoded configuration
//   - error: an encode error
func (c SceneConfig) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatYAML:
		return yaml.Marshal(c)
	}
	return nil, ErrUnsupportedFormat
}

// Validate checks value ranges and the load flag names.
func (c SceneConfig) Validate() error {
	if c.SphereTessellation < 3 {
		return fmt.Errorf("config: sphere_tessellation %d: %w", c.SphereTessellation, geometry.ErrTessellationOutOfRange)
	}
	if c.ExtentWorkers < 0 {
		return fmt.Errorf("config: extent_workers must not be negative, got %d", c.ExtentWorkers)
	}
	if _, err := scene.ParseLoadFlags(c.LoadFlags); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts the configuration into scene builder options. An empty name
// keeps the generated scene name.
//
// Returns:
//   - []scene.SceneBuilderOption: the options
//   - error: an error if the load flags do not parse
func (c SceneConfig) Options() ([]scene.SceneBuilderOption, error) {
	flags, err := scene.ParseLoadFlags(c.LoadFlags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []scene.SceneBuilderOption{
		scene.WithAmbientIntensity(c.AmbientIntensity),
		scene.WithLightingScale(c.LightingScale),
		scene.WithCameraSpeed(c.CameraSpeed),
		scene.WithExtentWorkers(c.ExtentWorkers),
		scene.WithLoadFlags(flags),
		scene.WithVersion(c.Version),
	}
	if c.Name != "" {
		opts = append(opts, scene.WithName(c.Name))
	}
	return opts, nil
}

// MeshFactory returns a mesh factory using the configured sphere tessellation.
func (c SceneConfig) MeshFactory() geometry.MeshFactory {
	return geometry.NewMeshFactory(geometry.WithDefaultTessellation(c.SphereTessellation))
}
