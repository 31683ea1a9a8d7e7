package common

import "fmt"

// IndexOutOfRangeError is the panic value raised when a collection is accessed with
// an index outside of its bounds. Indices into scene collections are compacted on
// delete, so a stale index held across a delete is the usual cause.
type IndexOutOfRangeError struct {
	Collection string
	Index      int
	Len        int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Collection, e.Index, e.Len)
}

// CheckIndex panics with an *IndexOutOfRangeError if i is not a valid index into a
// collection of length n.
//
// Parameters:
//   - collection: name of the collection, used in the error message
//   - i: the index to validate
//   - n: the collection length
func CheckIndex(collection string, i, n int) {
	if i < 0 || i >= n {
		panic(&IndexOutOfRangeError{Collection: collection, Index: i, Len: n})
	}
}
