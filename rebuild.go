// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import "math/bits"

// Doubling the table splits every bucket in two: a node whose hash has
// the new bit (the old bucket count) clear stays at index i, the others
// move to index i+oldlen. Rather than reinserting every node, which
// costs O(k log k) per bucket, each tree is
//
//  1. flattened into a chain sorted by key in O(k) time and O(1) space,
//  2. partitioned by the new hash bit into two chains, still sorted,
//  3. rebuilt from each chain as a perfectly balanced tree in O(k).
//
// The chains are threaded through node.parent, which the rebuild
// overwrites anyway.

// doubleCapacity moves every node into a table twice the size.
func (m *Map[K, V]) doubleCapacity() {
	oldTable := m.table
	oldLen := len(oldTable)
	newTable := make([]int32, oldLen*2)

	for i, root := range oldTable {
		if root == sentinel {
			continue
		}
		head, _ := m.flatten(root)
		low, lowCount, high, highCount := m.partition(head, uint64(oldLen))
		newTable[i] = m.build(low, lowCount)
		newTable[i+oldLen] = m.build(high, highCount)
	}
	m.setTable(newTable)
}

// flatten chains the nodes of the tree rooted at root in ascending key
// order through their parent links and returns the first node of the
// chain and its length. The last node's parent is 0.
//
// This is a Morris traversal: before descending into a left subtree the
// rightmost node of that subtree gets its right link pointed back at the
// subtree's parent, which is how the walk climbs back up without a
// stack. The thread is removed on the way back, so left and right links
// are as they were once flatten returns.
func (m *Map[K, V]) flatten(root int32) (head int32, n int) {
	nodes := m.nodes
	tail := int32(sentinel)
	visit := func(i int32) {
		if tail == sentinel {
			head = i
		} else {
			nodes[tail].parent = i
		}
		tail = i
		n++
	}

	for cur := root; cur != sentinel; {
		left := nodes[cur].left
		if left == sentinel {
			visit(cur)
			cur = nodes[cur].right
			continue
		}
		pred := left
		for r := nodes[pred].right; r != sentinel && r != cur; r = nodes[pred].right {
			pred = r
		}
		if nodes[pred].right == sentinel {
			// First arrival: thread pred back to cur and descend.
			nodes[pred].right = cur
			cur = left
			continue
		}
		// Back from the left subtree: remove the thread.
		nodes[pred].right = sentinel
		visit(cur)
		cur = nodes[cur].right
	}
	if tail != sentinel {
		nodes[tail].parent = sentinel
	}
	return head, n
}

// partition splits a chain made by flatten into the nodes whose hash has
// bit clear and those that have it set. Both chains keep the input
// order.
func (m *Map[K, V]) partition(head int32, bit uint64) (
	low int32, lowCount int, high int32, highCount int) {

	nodes := m.nodes
	var lowTail, highTail int32
	for i := head; i != sentinel; {
		next := nodes[i].parent
		nodes[i].parent = sentinel
		if nodes[i].hash&bit == 0 {
			if lowTail == sentinel {
				low = i
			} else {
				nodes[lowTail].parent = i
			}
			lowTail = i
			lowCount++
		} else {
			if highTail == sentinel {
				high = i
			} else {
				nodes[highTail].parent = i
			}
			highTail = i
			highCount++
		}
		i = next
	}
	return low, lowCount, high, highCount
}

// avlBuilder assembles a balanced tree from nodes supplied in ascending
// order.
//
// The tree of n nodes gets the shape of a perfect tree of
// 2^k-1 >= n positions, k = bits.Len(n), with the leftmost 2^k-1-n
// leaves left out. Numbering the positions 0..2^k-2 in order, the
// leaves are exactly the even positions, so leaf p is left out when
// p/2 < skip. The result has height k and every node is balanced.
type avlBuilder[K, V any] struct {
	m    *Map[K, V]
	next int32 // head of the chain still to be placed
	skip int
}

// build turns the chain starting at head, which holds n nodes, into a
// balanced tree and returns its root.
func (m *Map[K, V]) build(head int32, n int) int32 {
	if n == 0 {
		return sentinel
	}
	positions := 1<<bits.Len(uint(n)) - 1
	b := avlBuilder[K, V]{m: m, next: head, skip: positions - n}
	root := b.subtree(0, positions-1)
	m.nodes[root].parent = sentinel
	if b.next != sentinel {
		panic("orderedmap: rebuild chain longer than its count")
	}
	return root
}

// subtree builds the part of the tree covering positions lo..hi.
func (b *avlBuilder[K, V]) subtree(lo, hi int) int32 {
	if lo > hi {
		return sentinel
	}
	mid := lo + (hi-lo)/2
	if lo == hi && mid/2 < b.skip {
		return sentinel
	}
	left := b.subtree(lo, mid-1)

	nodes := b.m.nodes
	n := b.next
	if n == sentinel {
		panic("orderedmap: rebuild chain shorter than its count")
	}
	b.next = nodes[n].parent

	right := b.subtree(mid+1, hi)

	nodes[n].left = left
	nodes[n].right = right
	if left != sentinel {
		nodes[left].parent = n
	}
	if right != sentinel {
		nodes[right].parent = n
	}
	nodes[n].height = max(b.m.height(left), b.m.height(right)) + 1
	return n
}
