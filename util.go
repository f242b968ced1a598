package pokebuf

import (
	"golang.org/x/exp/constraints"
)

func Ptr[T any](v T) *T { return &v } // Ptr is a helper function to create a pointer to a value, making union case setup cleaner.

// Roundup rounds n up to the nearest multiple of align, which must be a
// power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// allZero reports whether every byte of b is zero. Used by Unmarshal to
// tolerate zero padding between the decoded end and the buffer end.
func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
