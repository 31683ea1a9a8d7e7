package geometry

// MeshFactoryBuilderOption is a functional option for configuring a MeshFactory during construction.
type MeshFactoryBuilderOption func(*meshFactory)

// WithRightHanded selects the triangle winding of generated meshes.
// Right-handed (counter-clockwise) winding is the default.
//
// Parameters:
//   - rightHanded: true for right-handed winding
//
// Returns:
//   - MeshFactoryBuilderOption: functional option to set the winding
func WithRightHanded(rightHanded bool) MeshFactoryBuilderOption {
	return func(f *meshFactory) {
		f.rightHanded = rightHanded
	}
}

// WithDefaultTessellation sets the sphere tessellation used when Sphere is called with 0.
// Values below 3 are ignored.
//
// Parameters:
//   - tessellation: number of vertical segments
//
// Returns:
//   - MeshFactoryBuilderOption: functional option to set the default tessellation
func WithDefaultTessellation(tessellation int) MeshFactoryBuilderOption {
	return func(f *meshFactory) {
		if tessellation >= 3 {
			f.defaultTessellation = tessellation
		}
	}
}

// WithInvertedSphereNormals makes generated spheres face inward.
//
// Parameters:
//   - invert: true to point sphere normals toward the center
//
// Returns:
//   - MeshFactoryBuilderOption: functional option to set the normal direction
func WithInvertedSphereNormals(invert bool) MeshFactoryBuilderOption {
	return func(f *meshFactory) {
		f.invertSphereNormals = invert
	}
}
