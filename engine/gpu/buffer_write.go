package gpu

// BufferWrite describes a single GPU buffer write targeting a binding slot at a
// given byte offset.
type BufferWrite struct {
	Binding int
	Offset  uint64
	Data    []byte
}

// Sink receives buffer writes from the scene core. The core never owns GPU
// resources; it hands staged bytes to a Sink at frame boundaries.
type Sink interface {
	// WriteBuffers applies the writes in order and stops at the first failure.
	//
	// Parameters:
	//   - writes: the writes to apply
	//
	// Returns:
	//   - error: the first error reported by the device, if any
	WriteBuffers(writes []BufferWrite) error
}

// RecordingSink is a Sink that keeps every write in memory. Useful for tooling
// and tests that need to inspect staged bytes without a GPU device.
type RecordingSink struct {
	Writes []BufferWrite
}

var _ Sink = &RecordingSink{}

// WriteBuffers appends copies of the writes to the recording.
//
// Parameters:
//   - writes: the writes to record
func (r *RecordingSink) WriteBuffers(writes []BufferWrite) error {
	for _, w := range writes {
		data := make([]byte, len(w.Data))
		copy(data, w.Data)
		r.Writes = append(r.Writes, BufferWrite{Binding: w.Binding, Offset: w.Offset, Data: data})
	}
	return nil
}

// Reset clears the recording.
func (r *RecordingSink) Reset() {
	r.Writes = r.Writes[:0]
}

// teeSink forwards every batch to each of its sinks in order.
type teeSink []Sink

// Tee returns a Sink that forwards writes to every sink in order. The first error
// stops the forwarding and is returned.
//
// Parameters:
//   - sinks: the destinations
//
// Returns:
//   - Sink: the combined sink
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

func (t teeSink) WriteBuffers(writes []BufferWrite) error {
	for _, s := range t {
		if err := s.WriteBuffers(writes); err != nil {
			return err
		}
	}
	return nil
}
