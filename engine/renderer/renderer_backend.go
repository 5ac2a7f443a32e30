package renderer

import "sync"

// DefaultMemoryCapacity is the number of frames a MemoryBackend keeps when none is specified.
const DefaultMemoryCapacity = 64

// RendererBackend receives flushed frames and pushes them to a graphics API.
type RendererBackend interface {
	// Submit pushes a frame's matrices to the backend.
	//
	// Parameters:
	//   - f: the frame to submit
	//
	// Returns:
	//   - error: error if the frame could not be pushed
	Submit(f Frame) error

	// Release frees backend resources. Submitting after Release is undefined.
	Release()
}

// MemoryBackend records submitted frames in a bounded ring. It is the default backend and
// is used for headless replay and tests.
type MemoryBackend struct {
	mu       sync.Mutex
	frames   []Frame
	capacity int
	total    uint64
}

var _ RendererBackend = &MemoryBackend{}

// NewMemoryBackend creates a MemoryBackend keeping at most capacity frames.
// Non-positive capacities fall back to DefaultMemoryCapacity.
//
// Parameters:
//   - capacity: maximum number of frames to retain
//
// Returns:
//   - *MemoryBackend: the new backend
func NewMemoryBackend(capacity int) *MemoryBackend {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryBackend{
		frames:   make([]Frame, 0, capacity),
		capacity: capacity,
	}
}

func (b *MemoryBackend) Submit(f Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == b.capacity {
		copy(b.frames, b.frames[1:])
		b.frames = b.frames[:len(b.frames)-1]
	}
	b.frames = append(b.frames, f)
	b.total++
	return nil
}

func (b *MemoryBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = b.frames[:0]
}

// Last returns the most recently submitted frame.
//
// Returns:
//   - Frame: the last frame
//   - bool: false if nothing was submitted yet
func (b *MemoryBackend) Last() (Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return Frame{}, false
	}
	return b.frames[len(b.frames)-1], true
}

// Frames returns a copy of the retained frames, oldest first.
//
// Returns:
//   - []Frame: retained frames
func (b *MemoryBackend) Frames() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Frame, len(b.frames))
	copy(out, b.frames)
	return out
}

// Total returns how many frames were submitted over the backend's lifetime.
//
// Returns:
//   - uint64: submitted frame count
func (b *MemoryBackend) Total() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}
