// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import (
	"fmt"
	"strings"
)

// String converts m to a string representation using fmt's %v
// formatting of keys and elems, in insertion order.
func (m *Map[K, V]) String() string {
	return StringFunc(m,
		func(key K) string { return fmt.Sprint(key) },
		func(elem V) string { return fmt.Sprint(elem) },
	)
}

// StringFunc converts m to a string representation with the help of
// strK and strE functions to stringify m's keys and elems. Entries
// appear in insertion order.
func StringFunc[K any, V any](m *Map[K, V],
	strK func(key K) string,
	strE func(elem V) string) string {
	if m == nil || m.Len() == 0 {
		return "orderedmap.Map[]"
	}
	var b strings.Builder
	b.WriteString("orderedmap.Map[")
	first := true
	for it := m.Iter(); it.Next(); {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(strK(it.Key()))
		b.WriteByte(':')
		b.WriteString(strE(it.Elem()))
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if the same set of keys and elems are in m1 and
// m2, regardless of insertion order. Elements are compared using ==.
func Equal[K any, V comparable](m1, m2 *Map[K, V]) bool {
	return EqualFunc(m1, m2, func(a, b V) bool { return a == b })
}

// EqualFunc returns true if the same set of keys and elems are in m1
// and m2, regardless of insertion order. Elements are compared using
// eq.
func EqualFunc[K, V any](m1, m2 *Map[K, V], eq func(V, V) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for it := m1.Iter(); it.Next(); {
		e2, ok := m2.Get(it.Key())
		if !ok || !eq(it.Elem(), e2) {
			return false
		}
	}
	return true
}

// Clone returns a copy of m with the same ordering, hash function and
// insertion order.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}
	c := newMap[K, V](m.count, m.compare, m.hash)
	for it := m.Iter(); it.Next(); {
		c.Set(it.Key(), it.Elem())
	}
	return c
}
