// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTreeMap returns an empty map whose nodes the tests below wire up
// by hand. leaf caches a key's first byte as its hash so tests control
// the buckets; such nodes can't be found with Get.
func newTreeMap() *Map[string, string] {
	return NewFunc[string, string](strings.Compare, nil)
}

func leaf(m *Map[string, string], key string) int32 {
	i := m.alloc()
	m.nodes[i] = node[string, string]{key: key, elem: key, hash: uint64(key[0]), height: 1}
	return i
}

func tree(m *Map[string, string], left int32, key string, right int32) int32 {
	i := leaf(m, key)
	m.nodes[i].left = left
	m.nodes[i].right = right
	if left != sentinel {
		m.nodes[left].parent = i
	}
	if right != sentinel {
		m.nodes[right].parent = i
	}
	m.nodes[i].height = max(m.height(left), m.height(right)) + 1
	return i
}

// checkShape verifies parent links and cached heights of the tree at n
// and returns its height.
func checkShape(t *testing.T, m *Map[string, string], n int32) int32 {
	t.Helper()
	if n == sentinel {
		return 0
	}
	nd := m.nodes[n]
	for _, child := range []int32{nd.left, nd.right} {
		if child != sentinel && m.nodes[child].parent != n {
			t.Errorf("%s: child %s has wrong parent", nd.key, m.nodes[child].key)
		}
	}
	lh, rh := checkShape(t, m, nd.left), checkShape(t, m, nd.right)
	if lh-rh > 1 || rh-lh > 1 {
		t.Errorf("%s: unbalanced, heights %d and %d", nd.key, lh, rh)
	}
	if nd.height != max(lh, rh)+1 {
		t.Errorf("%s: height %d, want %d", nd.key, nd.height, max(lh, rh)+1)
	}
	return max(lh, rh) + 1
}

func chainKeys(m *Map[string, string], head int32) []string {
	var keys []string
	for i := head; i != sentinel; i = m.nodes[i].parent {
		keys = append(keys, m.nodes[i].key)
	}
	return keys
}

func TestFlatten(t *testing.T) {
	for _, tc := range []struct {
		build func(m *Map[string, string]) int32
		want  string
	}{{
		build: func(m *Map[string, string]) int32 {
			return tree(m, leaf(m, "a"), "b", leaf(m, "c"))
		},
		want: "abc",
	}, {
		build: func(m *Map[string, string]) int32 {
			return tree(m,
				tree(m, leaf(m, "a"), "b", leaf(m, "c")),
				"d",
				tree(m, leaf(m, "e"), "f", leaf(m, "g")))
		},
		want: "abcdefg",
	}, {
		build: func(m *Map[string, string]) int32 {
			return tree(m,
				tree(m, sentinel, "a", leaf(m, "b")),
				"c",
				tree(m, leaf(m, "d"), "e", sentinel))
		},
		want: "abcde",
	}, {
		build: func(m *Map[string, string]) int32 {
			return tree(m, sentinel, "a", tree(m, sentinel, "b", tree(m, sentinel, "c", leaf(m, "d"))))
		},
		want: "abcd",
	}, {
		build: func(m *Map[string, string]) int32 {
			return tree(m, tree(m, tree(m, leaf(m, "a"), "b", sentinel), "c", sentinel), "d", sentinel)
		},
		want: "abcd",
	}} {
		t.Run(tc.want, func(t *testing.T) {
			m := newTreeMap()
			root := tc.build(m)
			shape := m.treeString(root)
			head, n := m.flatten(root)
			if n != len(tc.want) {
				t.Errorf("flatten counted %d nodes, want %d", n, len(tc.want))
			}
			if got := strings.Join(chainKeys(m, head), ""); got != tc.want {
				t.Errorf("Got: %q Expected: %q", got, tc.want)
			}
			if after := m.treeString(root); after != shape {
				t.Errorf("flatten left the tree as %s, was %s", after, shape)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	for _, tc := range []struct {
		size int
		want string
	}{
		{1, "a"},
		{2, "(. a b)"},
		{3, "(a b c)"},
		{4, "(a b (. c d))"},
		{5, "(a b (c d e))"},
		{6, "((. a b) c (d e f))"},
		{7, "((a b c) d (e f g))"},
		{8, "((a b c) d (e f (. g h)))"},
		{9, "((a b c) d (e f (g h i)))"},
		{10, "((a b c) d ((. e f) g (h i j)))"},
		{11, "((a b c) d ((e f g) h (i j k)))"},
		{12, "((a b (. c d)) e ((f g h) i (j k l)))"},
		{13, "((a b (c d e)) f ((g h i) j (k l m)))"},
		{14, "(((. a b) c (d e f)) g ((h i j) k (l m n)))"},
		{15, "(((a b c) d (e f g)) h ((i j k) l (m n o)))"},
		{16, "(((a b c) d (e f g)) h ((i j k) l (m n (. o p))))"},
		{30, "((((. a b) c (d e f)) g ((h i j) k (l m n))) o " +
			"(((p q r) s (t u v)) w ((x y z) A (B C D))))"},
		{31, "((((a b c) d (e f g)) h ((i j k) l (m n o))) p " +
			"(((q r s) t (u v w)) x ((y z A) B (C D E))))"},
	} {
		const keys = "abcdefghijklmnopqrstuvwxyzABCDE"
		m := newTreeMap()
		var head, tail int32
		for i := 0; i < tc.size; i++ {
			n := leaf(m, keys[i:i+1])
			if tail == sentinel {
				head = n
			} else {
				m.nodes[tail].parent = n
			}
			tail = n
		}
		root := m.build(head, tc.size)
		if got := m.treeString(root); got != tc.want {
			t.Errorf("size %d: Got: %s Expected: %s", tc.size, got, tc.want)
		}
		if m.nodes[root].parent != sentinel {
			t.Errorf("size %d: root has a parent", tc.size)
		}
		checkShape(t, m, root)
	}
}

func TestDoubleCapacity(t *testing.T) {
	m := newTreeMap()
	root := tree(m,
		tree(m, leaf(m, "a"), "b", leaf(m, "c")),
		"d",
		tree(m, leaf(m, "e"), "f", leaf(m, "g")))
	// Link the nodes in an insertion order unrelated to the keys.
	for _, k := range "gbfadce" {
		for i := int32(1); i < int32(len(m.nodes)); i++ {
			if m.nodes[i].key == string(k) {
				m.linkLast(i)
			}
		}
	}
	m.count = 7
	m.setTable([]int32{root})
	checkMap(t, m)

	m.doubleCapacity()
	if len(m.table) != 2 {
		t.Fatalf("table has %d buckets", len(m.table))
	}
	if got := m.treeString(m.table[0]); got != "(b d f)" { // Even hash codes!
		t.Errorf("bucket 0: Got: %s Expected: (b d f)", got)
	}
	if got := m.treeString(m.table[1]); got != "(a c (. e g))" { // Odd hash codes!
		t.Errorf("bucket 1: Got: %s Expected: (a c (. e g))", got)
	}
	checkMap(t, m)
	if diff := cmp.Diff([]string{"g", "b", "f", "a", "d", "c", "e"}, keysOf(m)); diff != "" {
		t.Errorf("insertion order changed (-want +got):\n%s", diff)
	}
}
