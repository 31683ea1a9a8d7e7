package material

// History remembers the material a key was bound to before it was first
// overridden, so the override can later be reverted.
type History[K comparable] struct {
	originals map[K]Material
	order     []K
}

// NewHistory creates an empty History.
//
// Returns:
//   - *History[K]: the history
func NewHistory[K comparable]() *History[K] {
	return &History[K]{originals: make(map[K]Material)}
}

// Record stores original as the pre-override material of key. Only the first
// record for a key is kept, so repeated overrides still revert to the original.
//
// Parameters:
//   - key: the overridden owner
//   - original: the material it had before the override
func (h *History[K]) Record(key K, original Material) {
	if _, ok := h.originals[key]; ok {
		return
	}
	h.originals[key] = original
	h.order = append(h.order, key)
}

// Original returns the recorded material of key.
//
// Parameters:
//   - key: the overridden owner
//
// Returns:
//   - Material: the original material
//   - bool: false if key has no record
func (h *History[K]) Original(key K) (Material, bool) {
	m, ok := h.originals[key]
	return m, ok
}

// Forget removes and returns the record of key.
//
// Parameters:
//   - key: the overridden owner
//
// Returns:
//   - Material: the original material
//   - bool: false if key has no record
func (h *History[K]) Forget(key K) (Material, bool) {
	m, ok := h.originals[key]
	if !ok {
		return nil, false
	}
	delete(h.originals, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return m, true
}

// Keys returns the recorded keys in recording order.
//
// Returns:
//   - []K: the keys
func (h *History[K]) Keys() []K {
	out := make([]K, len(h.order))
	copy(out, h.order)
	return out
}

// Len returns the number of records.
func (h *History[K]) Len() int {
	return len(h.order)
}
