// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

// Nodes live in a single arena slice and refer to each other by index.
// Slot 0 is the sentinel of the insertion list: its next is the oldest
// entry and its prev the newest. The sentinel is never part of a bucket
// tree, so 0 also serves as the nil tree link.
const sentinel = 0

// node is a single entry. It is simultaneously a member of one bucket's
// AVL tree (left, right, parent) and of the insertion list (prev, next).
type node[K, V any] struct {
	key  K
	elem V
	// hash is the spread hash of key; its low bits select the bucket.
	hash uint64

	left, right, parent int32
	height              int32

	prev, next int32
}

// resetArena leaves only a self-linked sentinel.
func (m *Map[K, V]) resetArena() {
	if m.nodes == nil {
		m.nodes = make([]node[K, V], 1, 8)
	} else {
		// Drop references held by discarded slots.
		clear(m.nodes)
		m.nodes = m.nodes[:1]
	}
	m.free = sentinel
}

// alloc returns a zeroed slot, reusing freed slots first.
func (m *Map[K, V]) alloc() int32 {
	if i := m.free; i != sentinel {
		m.free = m.nodes[i].next
		m.nodes[i].next = sentinel
		return i
	}
	m.nodes = append(m.nodes, node[K, V]{})
	return int32(len(m.nodes) - 1)
}

// release zeroes slot i and pushes it onto the free list. The slot must
// already be detached from both its tree and the insertion list.
func (m *Map[K, V]) release(i int32) {
	m.nodes[i] = node[K, V]{next: m.free}
	m.free = i
}

// linkLast appends i at the tail of the insertion list.
func (m *Map[K, V]) linkLast(i int32) {
	nodes := m.nodes
	tail := nodes[sentinel].prev
	nodes[i].prev = tail
	nodes[i].next = sentinel
	nodes[tail].next = i
	nodes[sentinel].prev = i
}

// unlink splices i out of the insertion list.
func (m *Map[K, V]) unlink(i int32) {
	if i == sentinel {
		panic("orderedmap: unlink of list sentinel")
	}
	nodes := m.nodes
	prev, next := nodes[i].prev, nodes[i].next
	nodes[prev].next = next
	nodes[next].prev = prev
	nodes[i].prev = sentinel
	nodes[i].next = sentinel
}
