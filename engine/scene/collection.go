package scene

import "github.com/Carmen-Shannon/oxy-scene/common"

// Handle is a stable reference to a collection entry. Indices are compacted on
// delete, the serial is not, so a Handle can detect that the entry it was taken
// from is gone instead of silently aliasing its successor.
type Handle struct {
	Index  int
	Serial uint64
}

// collection is an ordered slice of items, each stamped with a serial that is
// never reused within the collection.
type collection[T any] struct {
	name    string
	items   []T
	serials []uint64
	next    uint64
}

func newCollection[T any](name string) collection[T] {
	return collection[T]{name: name}
}

func (c *collection[T]) len() int {
	return len(c.items)
}

func (c *collection[T]) add(item T) int {
	c.next++
	c.items = append(c.items, item)
	c.serials = append(c.serials, c.next)
	return len(c.items) - 1
}

func (c *collection[T]) get(i int) T {
	common.CheckIndex(c.name, i, len(c.items))
	return c.items[i]
}

func (c *collection[T]) set(i int, item T) {
	common.CheckIndex(c.name, i, len(c.items))
	c.items[i] = item
}

func (c *collection[T]) remove(i int) T {
	common.CheckIndex(c.name, i, len(c.items))
	item := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.serials = append(c.serials[:i], c.serials[i+1:]...)
	return item
}

func (c *collection[T]) clear() {
	c.items = nil
	c.serials = nil
}

func (c *collection[T]) handle(i int) Handle {
	common.CheckIndex(c.name, i, len(c.items))
	return Handle{Index: i, Serial: c.serials[i]}
}

// resolve returns the current index of h, trying the recorded index first.
func (c *collection[T]) resolve(h Handle) (int, bool) {
	if h.Index >= 0 && h.Index < len(c.serials) && c.serials[h.Index] == h.Serial {
		return h.Index, true
	}
	for i, s := range c.serials {
		if s == h.Serial {
			return i, true
		}
	}
	return -1, false
}

// snapshot returns a copy of the items.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
