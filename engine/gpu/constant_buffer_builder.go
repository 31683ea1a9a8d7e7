package gpu

// ConstantBufferBuilderOption is a functional option for configuring a ConstantBuffer during construction.
type ConstantBufferBuilderOption func(*constantBuffer)

// WithAlignment sets the byte alignment of every variable offset. Defaults to 16
// (the std140/WGSL uniform alignment).
//
// Parameters:
//   - alignment: the alignment in bytes
//
// Returns:
//   - ConstantBufferBuilderOption: functional option to set the alignment
func WithAlignment(alignment uint64) ConstantBufferBuilderOption {
	return func(cb *constantBuffer) {
		cb.alignment = alignment
	}
}
