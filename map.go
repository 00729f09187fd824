// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orderedmap provides the Map type, a hash table that remembers
// the order in which keys were first inserted and guarantees
// logarithmic lookup, insertion and removal even when many keys collide.
//
// Each bucket of the table is an AVL tree ordered by the keys' total
// order rather than a chain, so a bucket holding k colliding keys costs
// O(log k) to search. Independently of the trees, every entry is
// threaded on a doubly linked list in insertion order, which is the
// order all iteration follows.
//
// Keys need a total order. By default keys of ordered kinds (strings,
// integers, floats and defined types based on them) compare by value
// and keys with a Compare(K) int method use it; NewFunc accepts an
// explicit comparison function instead. The following requirements are
// the user's responsibility to follow:
//   - compare must be a total order: antisymmetric, transitive and
//     compare(a, a) == 0.
//   - compare(a, b) == 0 => hash(a) == hash(b)
//   - Modifying a key after it is inserted in a way that changes its
//     order or hash results in undefined behavior.
//
// A Map is not safe for concurrent use. Concurrent readers are fine;
// any writer needs external synchronization.
package orderedmap

// This file contains the bucket table. Lookups hash the key, pick the
// bucket from the low bits of the spread hash and binary search that
// bucket's tree. Inserting a new key links a node into the tree,
// rebalances the tree and appends the node to the insertion list.
//
// When the number of entries exceeds 3/4 of the number of buckets the
// table doubles. Doubling adds one significant hash bit, so every bucket
// splits into exactly two buckets of the new table. Each bucket's tree
// is flattened in key order, split by the new bit and rebuilt as a
// perfectly balanced tree, see rebuild.go. The insertion list does not
// take part in doubling.

import (
	"hash/maphash"
)

const (
	// Initial number of buckets. Must be a power of 2.
	minBuckets = 16

	// Maximum average number of entries per bucket that triggers
	// doubling is 3/4. Represented as loadFactorNum/loadFactorDen to
	// allow integer math.
	loadFactorNum = 3
	loadFactorDen = 4
)

// Map implements an insertion ordered hashmap.
type Map[K, V any] struct {
	count     int // # live entries == size of map
	threshold int // count above which the table doubles
	// modCount is bumped by every structural change: a new key, a
	// removed key or Clear. Replacing a value is not structural.
	modCount uint64

	// nodes is the arena. nodes[0] is the insertion list sentinel.
	nodes []node[K, V]
	// free is the head of the list of released slots, chained through
	// node.next. 0 when empty.
	free int32
	// table holds the root of each bucket's tree, 0 for an empty
	// bucket. len(table) is a power of 2.
	table []int32

	seed    maphash.Seed
	hash    func(maphash.Seed, K) uint64
	compare func(a, b K) int
}

// KeyElem contains a Key and Elem.
type KeyElem[K, V any] struct {
	Key  K
	Elem V
}

// New instantiates a new Map ordered by the keys' natural order and
// initialized with any KeyElems passed, inserted in argument order.
func New[K, V any](kes ...KeyElem[K, V]) *Map[K, V] {
	m := NewHint[K, V](len(kes))
	for _, ke := range kes {
		m.Set(ke.Key, ke.Elem)
	}
	return m
}

// NewHint instantiates a new Map ordered by the keys' natural order
// with a hint as to how many elements will be inserted.
func NewHint[K, V any](hint int) *Map[K, V] {
	return newMap[K, V](hint, compareNatural[K], hashNatural[K])
}

// NewFunc instantiates a new Map ordered by compare and initialized
// with any KeyElems passed. compare returns a negative number when a <
// b, a positive number when a > b and 0 when they are equal. The hash
// function is passed a [hash/maphash.Seed], this is meant to be used
// with functions and types in the [hash/maphash] package, though can be
// ignored. A nil hash uses the natural hash of the key's kind, which is
// only consistent with compare if compare agrees with the natural order
// on equality.
func NewFunc[K, V any](
	compare func(a, b K) int,
	hash func(maphash.Seed, K) uint64,
	kes ...KeyElem[K, V]) *Map[K, V] {

	if compare == nil {
		panic("orderedmap: NewFunc called with nil compare")
	}
	if hash == nil {
		hash = hashNatural[K]
	}
	m := newMap[K, V](len(kes), compare, hash)
	for _, ke := range kes {
		m.Set(ke.Key, ke.Elem)
	}
	return m
}

func newMap[K, V any](hint int,
	compare func(a, b K) int,
	hash func(maphash.Seed, K) uint64) *Map[K, V] {

	nbuckets := minBuckets
	for overLoadFactor(hint, nbuckets) {
		nbuckets *= 2
	}
	m := &Map[K, V]{
		seed:    maphash.MakeSeed(),
		hash:    hash,
		compare: compare,
	}
	m.resetArena()
	m.setTable(make([]int32, nbuckets))
	return m
}

// overLoadFactor reports whether count items placed in nbuckets buckets
// is over loadFactor.
func overLoadFactor(count int, nbuckets int) bool {
	return count > nbuckets/loadFactorDen*loadFactorNum
}

func (m *Map[K, V]) setTable(table []int32) {
	m.table = table
	m.threshold = len(table) / loadFactorDen * loadFactorNum
}

func (m *Map[K, V]) mask() uint64 {
	return uint64(len(m.table) - 1)
}

func (m *Map[K, V]) hashKey(key K) uint64 {
	return spread(m.hash(m.seed, key))
}

// Len returns the count of occupied elements in m.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// isNil reports whether key is a nil interface value.
func isNil[K any](key K) bool {
	return any(key) == nil
}

// lookup returns the node holding key, or 0.
func (m *Map[K, V]) lookup(key K) int32 {
	if m == nil || m.count == 0 || isNil(key) {
		return sentinel
	}
	nodes := m.nodes
	n := m.table[m.hashKey(key)&m.mask()]
	for n != sentinel {
		c := m.compare(key, nodes[n].key)
		switch {
		case c < 0:
			n = nodes[n].left
		case c > 0:
			n = nodes[n].right
		default:
			return n
		}
	}
	return sentinel
}

// Get returns the element associated with key and true if that key is
// in the Map, otherwise it returns the zero value of V and false.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if n := m.lookup(key); n != sentinel {
		return m.nodes[n].elem, true
	}
	var zeroV V
	return zeroV, false
}

// Has reports whether key is in m.
func (m *Map[K, V]) Has(key K) bool {
	return m.lookup(key) != sentinel
}

// Set associates key with elem in m. If key was already present its
// element is replaced in place, keeping its position in the iteration
// order, and the previous element is returned with true. Otherwise key
// is appended to the end of the iteration order and Set returns the
// zero value of V and false.
func (m *Map[K, V]) Set(key K, elem V) (V, bool) {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because a nil Map has no comparison or hash function.
		panic("Set called on nil map")
	}
	if isNil(key) {
		panic(ErrNilKey)
	}
	hash := m.hashKey(key)
	bucket := hash & m.mask()

	nearest := m.table[bucket]
	var c int
	if nearest == sentinel {
		// Catch keys without an order before they get into the map,
		// even though there is nothing to compare them with yet.
		m.compare(key, key)
	} else {
		for {
			c = m.compare(key, m.nodes[nearest].key)
			if c == 0 {
				prev := m.nodes[nearest].elem
				m.nodes[nearest].elem = elem
				return prev, true
			}
			child := m.nodes[nearest].right
			if c < 0 {
				child = m.nodes[nearest].left
			}
			if child == sentinel {
				break
			}
			nearest = child
		}
	}

	// alloc may grow the arena, so index m.nodes afresh from here on.
	n := m.alloc()
	m.nodes[n] = node[K, V]{
		key:    key,
		elem:   elem,
		hash:   hash,
		parent: nearest,
		height: 1,
	}
	m.linkLast(n)
	switch {
	case nearest == sentinel:
		m.table[bucket] = n
	case c < 0:
		m.nodes[nearest].left = n
		m.rebalance(nearest, true)
	default:
		m.nodes[nearest].right = n
		m.rebalance(nearest, true)
	}

	m.count++
	m.modCount++
	if m.count > m.threshold {
		m.doubleCapacity()
	}
	if debug {
		m.mustBeConsistent()
	}
	var zeroV V
	return zeroV, false
}

// Delete removes key and its associated element from the map. It
// returns the removed element and true, or the zero value of V and
// false if key was not present.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	n := m.lookup(key)
	if n == sentinel {
		var zeroV V
		return zeroV, false
	}
	elem := m.nodes[n].elem
	m.remove(n)
	return elem, true
}

// remove detaches n from its tree and from the insertion list and
// releases its slot.
func (m *Map[K, V]) remove(n int32) {
	m.unlink(n)
	m.removeFromTree(n)
	m.release(n)

	m.count--
	m.modCount++
	if m.count == 0 {
		// Reset the hash seed to make it more difficult for attackers to
		// repeatedly trigger hash collisions. See issue 25237.
		m.seed = maphash.MakeSeed()
	}
	if debug {
		m.mustBeConsistent()
	}
}

// removeFromTree detaches n from its bucket tree and rebalances. A node
// with two children is replaced by the adjacent node from its taller
// subtree: that node is first removed from its own position and then
// takes over n's position, children and height. Only tree links change,
// so every other node keeps its identity and its place in the insertion
// list.
func (m *Map[K, V]) removeFromTree(n int32) {
	nodes := m.nodes
	left, right := nodes[n].left, nodes[n].right
	originalParent := nodes[n].parent

	switch {
	case left != sentinel && right != sentinel:
		var adjacent int32
		if nodes[left].height > nodes[right].height {
			adjacent = m.last(left)
		} else {
			adjacent = m.first(right)
		}
		m.removeFromTree(adjacent)

		// Removing adjacent may have rotated n's subtrees.
		var leftHeight, rightHeight int32
		if left = nodes[n].left; left != sentinel {
			leftHeight = nodes[left].height
			nodes[adjacent].left = left
			nodes[left].parent = adjacent
			nodes[n].left = sentinel
		}
		if right = nodes[n].right; right != sentinel {
			rightHeight = nodes[right].height
			nodes[adjacent].right = right
			nodes[right].parent = adjacent
			nodes[n].right = sentinel
		}
		nodes[adjacent].height = max(leftHeight, rightHeight) + 1
		m.replaceInParent(n, adjacent)
		return
	case left != sentinel:
		m.replaceInParent(n, left)
		nodes[n].left = sentinel
	case right != sentinel:
		m.replaceInParent(n, right)
		nodes[n].right = sentinel
	default:
		m.replaceInParent(n, sentinel)
	}
	m.rebalance(originalParent, false)
}

// Clear deletes all keys from m.
func (m *Map[K, V]) Clear() {
	if m == nil || m.count == 0 {
		return
	}
	clear(m.table)
	m.resetArena()
	m.count = 0
	m.modCount++
	m.seed = maphash.MakeSeed()
}
