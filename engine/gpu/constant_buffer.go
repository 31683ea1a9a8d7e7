package gpu

import (
	"errors"
	"fmt"
)

// ErrVariableSizeMismatch is returned when a constant buffer variable is rewritten
// with a payload whose size differs from its first write.
var ErrVariableSizeMismatch = errors.New("gpu: constant buffer variable size mismatch")

// constantBuffer is the implementation of the ConstantBuffer interface.
type constantBuffer struct {
	binding   int
	alignment uint64
	data      []byte
	offsets   map[string]uint64
	sizes     map[string]int

	dirty            bool
	dirtyLo, dirtyHi uint64
}

// ConstantBuffer is a CPU-side staging block of named variables laid out at
// aligned offsets. Variables are placed on first write and keep their offset for
// the life of the buffer. Flush hands the dirty byte range to a Sink.
type ConstantBuffer interface {
	// Binding returns the binding slot the buffer flushes to.
	//
	// Returns:
	//   - int: the binding slot
	Binding() int

	// SetBlob writes data into the named variable, allocating it on first use.
	//
	// Parameters:
	//   - name: the variable name
	//   - data: the bytes to stage
	//
	// Returns:
	//   - error: ErrVariableSizeMismatch if the variable exists with a different size
	SetBlob(name string, data []byte) error

	// Blob returns a copy of the bytes staged for the named variable.
	//
	// Parameters:
	//   - name: the variable name
	//
	// Returns:
	//   - []byte: the staged bytes
	//   - bool: false if the variable has never been written
	Blob(name string) ([]byte, bool)

	// Offset returns the byte offset of the named variable.
	//
	// Parameters:
	//   - name: the variable name
	//
	// Returns:
	//   - uint64: the offset
	//   - bool: false if the variable has never been written
	Offset(name string) (uint64, bool)

	// Size returns the total staged size in bytes.
	//
	// Returns:
	//   - uint64: the size
	Size() uint64

	// Dirty reports whether any bytes changed since the last Flush.
	//
	// Returns:
	//   - bool: true if a flush would write data
	Dirty() bool

	// Flush writes the dirty byte range to the sink and clears the dirty state.
	// On a sink error the buffer stays dirty so the next Flush retries.
	//
	// Parameters:
	//   - sink: the destination of the write
	//
	// Returns:
	//   - error: the sink error, unchanged
	Flush(sink Sink) error
}

var _ ConstantBuffer = &constantBuffer{}

// NewConstantBuffer creates an empty ConstantBuffer bound to the given slot.
//
// Parameters:
//   - binding: the binding slot used for flushed writes
//   - options: functional options to configure the buffer
//
// Returns:
//   - ConstantBuffer: the newly created buffer
func NewConstantBuffer(binding int, options ...ConstantBufferBuilderOption) ConstantBuffer {
	cb := &constantBuffer{
		binding:   binding,
		alignment: 16,
		offsets:   make(map[string]uint64),
		sizes:     make(map[string]int),
	}
	for _, option := range options {
		option(cb)
	}
	return cb
}

func (cb *constantBuffer) Binding() int {
	return cb.binding
}

func (cb *constantBuffer) SetBlob(name string, data []byte) error {
	offset, ok := cb.offsets[name]
	if !ok {
		offset = alignUp(uint64(len(cb.data)), cb.alignment)
		grown := make([]byte, offset+alignUp(uint64(len(data)), cb.alignment))
		copy(grown, cb.data)
		cb.data = grown
		cb.offsets[name] = offset
		cb.sizes[name] = len(data)
	} else if cb.sizes[name] != len(data) {
		return fmt.Errorf("variable %q has %d bytes, got %d: %w", name, cb.sizes[name], len(data), ErrVariableSizeMismatch)
	}

	copy(cb.data[offset:], data)
	cb.markDirty(offset, offset+uint64(len(data)))
	return nil
}

func (cb *constantBuffer) Blob(name string) ([]byte, bool) {
	offset, ok := cb.offsets[name]
	if !ok {
		return nil, false
	}
	out := make([]byte, cb.sizes[name])
	copy(out, cb.data[offset:])
	return out, true
}

func (cb *constantBuffer) Offset(name string) (uint64, bool) {
	offset, ok := cb.offsets[name]
	return offset, ok
}

func (cb *constantBuffer) Size() uint64 {
	return uint64(len(cb.data))
}

func (cb *constantBuffer) Dirty() bool {
	return cb.dirty
}

func (cb *constantBuffer) Flush(sink Sink) error {
	if !cb.dirty {
		return nil
	}
	data := make([]byte, cb.dirtyHi-cb.dirtyLo)
	copy(data, cb.data[cb.dirtyLo:cb.dirtyHi])
	if err := sink.WriteBuffers([]BufferWrite{{Binding: cb.binding, Offset: cb.dirtyLo, Data: data}}); err != nil {
		return err
	}
	cb.dirty = false
	return nil
}

func (cb *constantBuffer) markDirty(lo, hi uint64) {
	if !cb.dirty {
		cb.dirty = true
		cb.dirtyLo, cb.dirtyHi = lo, hi
		return
	}
	cb.dirtyLo = min(cb.dirtyLo, lo)
	cb.dirtyHi = max(cb.dirtyHi, hi)
}

func alignUp(n, alignment uint64) uint64 {
	if alignment <= 1 {
		return n
	}
	return (n + alignment - 1) / alignment * alignment
}
