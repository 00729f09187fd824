// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

// This file holds the per-bucket AVL tree maintenance. Heights are
// cached in every node; an absent child has height 0 and a leaf has
// height 1.

func (m *Map[K, V]) height(i int32) int32 {
	if i == sentinel {
		return 0
	}
	return m.nodes[i].height
}

// first returns the leftmost node of the subtree rooted at i.
func (m *Map[K, V]) first(i int32) int32 {
	for l := m.nodes[i].left; l != sentinel; l = m.nodes[i].left {
		i = l
	}
	return i
}

// last returns the rightmost node of the subtree rooted at i.
func (m *Map[K, V]) last(i int32) int32 {
	for r := m.nodes[i].right; r != sentinel; r = m.nodes[i].right {
		i = r
	}
	return i
}

// replaceInParent puts replacement where n was: in n's parent, or as
// the root of n's bucket.
func (m *Map[K, V]) replaceInParent(n, replacement int32) {
	nodes := m.nodes
	parent := nodes[n].parent
	nodes[n].parent = sentinel
	if replacement != sentinel {
		nodes[replacement].parent = parent
	}
	if parent == sentinel {
		m.table[nodes[n].hash&m.mask()] = replacement
		return
	}
	if nodes[parent].left == n {
		nodes[parent].left = replacement
	} else {
		if nodes[parent].right != n {
			panic("orderedmap: node is not a child of its parent")
		}
		nodes[parent].right = replacement
	}
}

// rebalance walks from unbalanced to the root restoring the AVL
// invariant and the cached heights. After an insert the walk stops at
// the first node whose height is unchanged or that was rotated; after a
// delete it stops at the first node whose height is unchanged.
func (m *Map[K, V]) rebalance(unbalanced int32, insert bool) {
	for n := unbalanced; n != sentinel; n = m.nodes[n].parent {
		left, right := m.nodes[n].left, m.nodes[n].right
		leftHeight, rightHeight := m.height(left), m.height(right)

		switch delta := leftHeight - rightHeight; delta {
		case -2:
			rightDelta := m.height(m.nodes[right].left) - m.height(m.nodes[right].right)
			if rightDelta == -1 || (rightDelta == 0 && !insert) {
				m.rotateLeft(n) // right-right
			} else {
				m.rotateRight(right) // right-left
				m.rotateLeft(n)
			}
			if insert {
				return
			}
		case 2:
			leftDelta := m.height(m.nodes[left].left) - m.height(m.nodes[left].right)
			if leftDelta == 1 || (leftDelta == 0 && !insert) {
				m.rotateRight(n) // left-left
			} else {
				m.rotateLeft(left) // left-right
				m.rotateRight(n)
			}
			if insert {
				return
			}
		case 0:
			m.nodes[n].height = leftHeight + 1
			if insert {
				return
			}
		default:
			m.nodes[n].height = max(leftHeight, rightHeight) + 1
			if !insert {
				return
			}
		}
	}
}

// rotateLeft moves root's right child into root's position.
func (m *Map[K, V]) rotateLeft(root int32) {
	nodes := m.nodes
	left := nodes[root].left
	pivot := nodes[root].right
	pivotLeft := nodes[pivot].left
	pivotRight := nodes[pivot].right

	nodes[root].right = pivotLeft
	if pivotLeft != sentinel {
		nodes[pivotLeft].parent = root
	}
	m.replaceInParent(root, pivot)

	nodes[pivot].left = root
	nodes[root].parent = pivot

	nodes[root].height = max(m.height(left), m.height(pivotLeft)) + 1
	nodes[pivot].height = max(nodes[root].height, m.height(pivotRight)) + 1
}

// rotateRight moves root's left child into root's position.
func (m *Map[K, V]) rotateRight(root int32) {
	nodes := m.nodes
	pivot := nodes[root].left
	right := nodes[root].right
	pivotLeft := nodes[pivot].left
	pivotRight := nodes[pivot].right

	nodes[root].left = pivotRight
	if pivotRight != sentinel {
		nodes[pivotRight].parent = root
	}
	m.replaceInParent(root, pivot)

	nodes[pivot].right = root
	nodes[root].parent = pivot

	nodes[root].height = max(m.height(right), m.height(pivotRight)) + 1
	nodes[pivot].height = max(nodes[root].height, m.height(pivotLeft)) + 1
}
