package scene

import (
	"fmt"
	"strings"
)

// LoadFlags tell a scene loader which optional post-processing to run.
type LoadFlags uint32

const (
	LoadFlagsNone LoadFlags = 0
	// LoadFlagsGenerateAreaLights creates a mesh area light for every emissive mesh.
	LoadFlagsGenerateAreaLights LoadFlags = 1 << 0
	// LoadFlagsStoreMaterialHistory keeps the material a mesh had before it was overridden.
	LoadFlagsStoreMaterialHistory LoadFlags = 1 << 1
)

// Has reports whether every bit of flag is set.
func (f LoadFlags) Has(flag LoadFlags) bool {
	return f&flag == flag
}

func (f LoadFlags) String() string {
	if f == LoadFlagsNone {
		return "none"
	}
	var parts []string
	if f.Has(LoadFlagsGenerateAreaLights) {
		parts = append(parts, "generate_area_lights")
	}
	if f.Has(LoadFlagsStoreMaterialHistory) {
		parts = append(parts, "store_material_history")
	}
	return strings.Join(parts, "|")
}

// ParseLoadFlags parses the names produced by LoadFlags.String, joined by '|' or ','.
//
// Parameters:
//   - s: the flag names
//
// Returns:
//   - LoadFlags: the parsed flags
//   - error: an error naming the first unknown flag
func ParseLoadFlags(s string) (LoadFlags, error) {
	flags := LoadFlagsNone
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "", "none":
		case "generate_area_lights":
			flags |= LoadFlagsGenerateAreaLights
		case "store_material_history":
			flags |= LoadFlagsStoreMaterialHistory
		default:
			return LoadFlagsNone, fmt.Errorf("scene: unknown load flag %q", name)
		}
	}
	return flags, nil
}

// ApplyLoadFlags runs the post-load steps selected by flags on a freshly loaded
// scene: material history recording is switched on and area lights are generated.
//
// Parameters:
//   - s: the loaded scene
//   - flags: the requested steps
//
// Returns:
//   - error: the first error from CreateAreaLights
func ApplyLoadFlags(s Scene, flags LoadFlags) error {
	s.SetLoadFlags(flags)
	if flags.Has(LoadFlagsGenerateAreaLights) {
		if _, err := s.CreateAreaLights(); err != nil {
			return fmt.Errorf("scene %q: generating area lights: %w", s.Name(), err)
		}
	}
	return nil
}
