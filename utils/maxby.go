// File: /utils/maxby.go
package utils

import (
	"cmp"
)

// MaxBy returns the element of items whose key is greatest, scanning left to
// right with a strict comparison so the first element holding the maximum
// keeps winning on ties. The boolean is false when items is empty.
func MaxBy[T any, K cmp.Ordered](items []T, key func(T) K) (T, bool) {
	var best T
	var bestKey K
	found := false

	for _, item := range items {
		itemKey := key(item)
		if !found || itemKey > bestKey {
			best = item
			bestKey = itemKey
			found = true
		}
	}

	return best, found
}
