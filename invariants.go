// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import (
	"errors"
	"fmt"
)

// checkInvariants verifies the bucket trees and the insertion list:
//   - every node's cached height is 1 + the larger child height and the
//     child heights differ by at most 1,
//   - child and parent links agree,
//   - each node sits in the bucket its hash selects,
//   - an in-order walk of a bucket yields strictly ascending keys,
//   - the insertion list is doubly linked consistently, and
//   - the list, the trees and count agree on the number of entries.
func (m *Map[K, V]) checkInvariants() error {
	var errs []error
	treeCount := 0
	for bucket, root := range m.table {
		if root == sentinel {
			continue
		}
		if p := m.nodes[root].parent; p != sentinel {
			errs = append(errs, fmt.Errorf("bucket %d: root %d has parent %d", bucket, root, p))
		}
		c := bucketChecker[K, V]{m: m, bucket: uint64(bucket)}
		c.check(root)
		treeCount += c.count
		errs = append(errs, c.errs...)
	}

	listCount := 0
	for prev, i := int32(sentinel), m.nodes[sentinel].next; ; prev, i = i, m.nodes[i].next {
		if m.nodes[i].prev != prev {
			errs = append(errs, fmt.Errorf("list: node %d has prev %d, want %d", i, m.nodes[i].prev, prev))
		}
		if i == sentinel {
			break
		}
		listCount++
		if listCount > m.count {
			errs = append(errs, fmt.Errorf("list: longer than count %d", m.count))
			break
		}
	}

	if treeCount != m.count || listCount != m.count {
		errs = append(errs, fmt.Errorf("count %d, trees hold %d, list holds %d",
			m.count, treeCount, listCount))
	}
	return errors.Join(errs...)
}

func (m *Map[K, V]) mustBeConsistent() {
	if err := m.checkInvariants(); err != nil {
		panic(err)
	}
}

type bucketChecker[K, V any] struct {
	m       *Map[K, V]
	bucket  uint64
	count   int
	prev    int32
	hasPrev bool
	errs    []error
}

// check walks the subtree at n in order and returns its height.
func (c *bucketChecker[K, V]) check(n int32) int32 {
	if n == sentinel {
		return 0
	}
	nodes := c.m.nodes
	nd := &nodes[n]
	for _, child := range [2]int32{nd.left, nd.right} {
		if child != sentinel && nodes[child].parent != n {
			c.errs = append(c.errs, fmt.Errorf("node %d: child %d has parent %d",
				n, child, nodes[child].parent))
		}
	}

	leftHeight := c.check(nd.left)

	c.count++
	if b := nd.hash & c.m.mask(); b != c.bucket {
		c.errs = append(c.errs, fmt.Errorf("node %d: in bucket %d, hash selects %d", n, c.bucket, b))
	}
	if c.hasPrev && c.m.compare(nodes[c.prev].key, nd.key) >= 0 {
		c.errs = append(c.errs, fmt.Errorf("node %d: key %v not above predecessor %v",
			n, nd.key, nodes[c.prev].key))
	}
	c.prev, c.hasPrev = n, true

	rightHeight := c.check(nd.right)

	if d := leftHeight - rightHeight; d < -1 || d > 1 {
		c.errs = append(c.errs, fmt.Errorf("node %d: unbalanced, heights %d and %d",
			n, leftHeight, rightHeight))
	}
	if want := max(leftHeight, rightHeight) + 1; nd.height != want {
		c.errs = append(c.errs, fmt.Errorf("node %d: height %d, want %d", n, nd.height, want))
	}
	return max(leftHeight, rightHeight) + 1
}
