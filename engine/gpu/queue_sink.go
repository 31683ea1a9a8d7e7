package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// QueueSink is a Sink backed by a wgpu device queue. Buffers are created per
// binding slot with CreateBuffer and every write is forwarded to Queue.WriteBuffer.
type QueueSink struct {
	mu      sync.Mutex
	device  *wgpu.Device
	queue   *wgpu.Queue
	buffers map[int]*wgpu.Buffer
}

var _ Sink = &QueueSink{}

// NewQueueSink creates a QueueSink that allocates from device and writes through queue.
//
// Parameters:
//   - device: the device used to allocate buffers
//   - queue: the queue used for buffer writes
//
// Returns:
//   - *QueueSink: the newly created sink
func NewQueueSink(device *wgpu.Device, queue *wgpu.Queue) *QueueSink {
	return &QueueSink{
		device:  device,
		queue:   queue,
		buffers: make(map[int]*wgpu.Buffer),
	}
}

// CreateBuffer allocates a uniform/storage buffer for the binding slot, replacing
// and releasing any buffer already registered there.
//
// Parameters:
//   - binding: the binding slot
//   - label: debug label for the buffer
//   - size: the buffer size in bytes
//   - usage: additional usage flags; CopyDst is always added
//
// Returns:
//   - error: an error if buffer creation fails
func (s *QueueSink) CreateBuffer(binding int, label string, size uint64, usage wgpu.BufferUsage) error {
	buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("gpu: create buffer %q: %w", label, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old := s.buffers[binding]; old != nil {
		old.Release()
	}
	s.buffers[binding] = buf
	return nil
}

// Buffer returns the buffer registered for the binding slot, or nil.
//
// Parameters:
//   - binding: the binding slot
//
// Returns:
//   - *wgpu.Buffer: the buffer or nil
func (s *QueueSink) Buffer(binding int) *wgpu.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffers[binding]
}

// WriteBuffers forwards each write to the queue. Writes to a binding with no
// buffer are dropped.
//
// Parameters:
//   - writes: the writes to apply
//
// Returns:
//   - error: the first queue error, wrapped with the binding and offset
func (s *QueueSink) WriteBuffers(writes []BufferWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		buf := s.buffers[w.Binding]
		if buf == nil {
			slog.Debug("gpu.QueueSink.WriteBuffers: no buffer for binding", "binding", w.Binding)
			continue
		}
		if err := s.queue.WriteBuffer(buf, w.Offset, w.Data); err != nil {
			return fmt.Errorf("gpu: write binding %d at offset %d: %w", w.Binding, w.Offset, err)
		}
	}
	return nil
}

// Release releases every buffer created by the sink.
func (s *QueueSink) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, buf := range s.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(s.buffers, i)
	}
}
