// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import "iter"

// Iterator is instantiated by a call to Iter(). It walks a Map in
// insertion order.
//
// The map must not be structurally modified while an Iterator is in
// use, except through the Iterator's own Remove. A key added or removed
// any other way makes the next call to Next or Remove panic with
// ErrConcurrentModification. Replacing the element of an existing key is
// not a structural modification.
type Iterator[K, V any] struct {
	m *Map[K, V]
	// cur is the entry returned by the last successful Next, or 0.
	cur int32
	// next is the entry Next will move to; 0 once the walk is done.
	next     int32
	modCount uint64
}

// Iter instantiates an Iterator to explore the elements of the Map in
// the order their keys were first inserted.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	if m == nil {
		return &Iterator[K, V]{}
	}
	return &Iterator[K, V]{
		m:        m,
		next:     m.nodes[sentinel].next,
		modCount: m.modCount,
	}
}

func (it *Iterator[K, V]) checkModCount() {
	if it.m.modCount != it.modCount {
		panic(ErrConcurrentModification)
	}
}

// Next moves the iterator to the next element. Next returns false
// when the iterator is complete.
func (it *Iterator[K, V]) Next() bool {
	m := it.m
	if m == nil {
		return false
	}
	it.checkModCount()
	if it.next == sentinel {
		it.cur = sentinel
		return false
	}
	it.cur = it.next
	it.next = m.nodes[it.cur].next
	return true
}

func (it *Iterator[K, V]) current() *node[K, V] {
	if it.cur == sentinel {
		panic(ErrIteratorExhausted)
	}
	return &it.m.nodes[it.cur]
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (it *Iterator[K, V]) Key() K {
	return it.current().key
}

// Elem returns the element at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *Iterator[K, V]) Elem() V {
	return it.current().elem
}

// Remove deletes the entry at the iterator's current position from the
// map. Iteration continues with the entry that followed it. Remove
// panics with ErrIteratorExhausted if there is no current entry,
// including after a previous Remove.
func (it *Iterator[K, V]) Remove() {
	if it.m == nil || it.cur == sentinel {
		panic(ErrIteratorExhausted)
	}
	it.checkModCount()
	it.m.remove(it.cur)
	it.cur = sentinel
	it.modCount = it.m.modCount
}

// All returns an iterator over key-element pairs from m in insertion
// order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over elements in m in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Elem()) {
				return
			}
		}
	}
}
