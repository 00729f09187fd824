// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import (
	"errors"
	"fmt"
)

// Misuse of a Map is reported by panicking with one of these errors, or
// with an error wrapping one of them. Callers that need to survive
// misuse can recover the value and test it with errors.Is.
var (
	// ErrNilKey is raised by Set when the key is a nil interface value.
	ErrNilKey = errors.New("orderedmap: nil key")
	// ErrUncomparableKey is raised on the first comparison of a key
	// that has no natural order when no comparison function was given.
	ErrUncomparableKey = errors.New("orderedmap: key has no natural order")
	// ErrConcurrentModification is raised by an Iterator when the map was
	// structurally modified other than through the iterator itself.
	ErrConcurrentModification = errors.New("orderedmap: concurrent map modification during iteration")
	// ErrIteratorExhausted is raised when an Iterator is asked for its
	// current entry while it is not positioned on one.
	ErrIteratorExhausted = errors.New("orderedmap: iterator is not positioned on an entry")
)

func uncomparable(k any) error {
	return fmt.Errorf("%w: %T", ErrUncomparableKey, k)
}
