// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orderedmap

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// compareOrdered orders x and y the way cmp.Compare does: a NaN is
// less than any other value and equal to every other NaN.
func compareOrdered[T constraints.Ordered](x, y T) int {
	xNaN := x != x
	yNaN := y != y
	if xNaN {
		if yNaN {
			return 0
		}
		return -1
	}
	if yNaN {
		return +1
	}
	if x < y {
		return -1
	}
	if x > y {
		return +1
	}
	return 0
}

func compareAs[T constraints.Ordered](x T, y any) int {
	yt, ok := y.(T)
	if !ok {
		panic(mismatched(x, y))
	}
	return compareOrdered(x, yt)
}

func mismatched(x, y any) error {
	return fmt.Errorf("%w: %T compared with %T", ErrUncomparableKey, x, y)
}

// compareNatural is the ordering used when no comparison function is
// given. Keys of an ordered kind compare by value and keys with a
// Compare(K) int method, such as time.Time, use that method. Anything
// else panics with ErrUncomparableKey.
func compareNatural[K any](a, b K) int {
	switch x := any(a).(type) {
	case string:
		return compareAs(x, any(b))
	case int:
		return compareAs(x, any(b))
	case int8:
		return compareAs(x, any(b))
	case int16:
		return compareAs(x, any(b))
	case int32:
		return compareAs(x, any(b))
	case int64:
		return compareAs(x, any(b))
	case uint:
		return compareAs(x, any(b))
	case uint8:
		return compareAs(x, any(b))
	case uint16:
		return compareAs(x, any(b))
	case uint32:
		return compareAs(x, any(b))
	case uint64:
		return compareAs(x, any(b))
	case uintptr:
		return compareAs(x, any(b))
	case float32:
		return compareAs(x, any(b))
	case float64:
		return compareAs(x, any(b))
	case interface{ Compare(K) int }:
		return x.Compare(b)
	}
	return compareKind(any(a), any(b))
}

// compareKind handles defined types whose underlying type is ordered,
// e.g. `type Name string`.
func compareKind(a, b any) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() {
		panic(uncomparable(a))
	}
	if !vb.IsValid() || va.Type() != vb.Type() {
		panic(mismatched(a, b))
	}
	switch va.Kind() {
	case reflect.String:
		return compareOrdered(va.String(), vb.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return compareOrdered(va.Int(), vb.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return compareOrdered(va.Uint(), vb.Uint())
	case reflect.Float32, reflect.Float64:
		return compareOrdered(va.Float(), vb.Float())
	}
	panic(uncomparable(a))
}

// canonicalNaN is hashed for every NaN so that keys compareNatural
// reports as equal also hash equal.
const canonicalNaN = 0x7ff8000000000001

func hashUint64(seed maphash.Seed, u uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	return maphash.Bytes(seed, buf[:])
}

func hashFloat64(seed maphash.Seed, f float64) uint64 {
	switch {
	case f != f:
		return hashUint64(seed, canonicalNaN)
	case f == 0:
		// -0 == +0
		return hashUint64(seed, 0)
	}
	return hashUint64(seed, math.Float64bits(f))
}

// hashNatural is the hash used when none is given. It agrees with
// compareNatural: keys that compare equal hash equal. Keys of types it
// does not know all hash to 0 and so share one bucket, which stays a
// balanced tree.
func hashNatural[K any](seed maphash.Seed, k K) uint64 {
	switch x := any(k).(type) {
	case string:
		return maphash.String(seed, x)
	case int:
		return hashUint64(seed, uint64(x))
	case int8:
		return hashUint64(seed, uint64(x))
	case int16:
		return hashUint64(seed, uint64(x))
	case int32:
		return hashUint64(seed, uint64(x))
	case int64:
		return hashUint64(seed, uint64(x))
	case uint:
		return hashUint64(seed, uint64(x))
	case uint8:
		return hashUint64(seed, uint64(x))
	case uint16:
		return hashUint64(seed, uint64(x))
	case uint32:
		return hashUint64(seed, uint64(x))
	case uint64:
		return hashUint64(seed, x)
	case uintptr:
		return hashUint64(seed, uint64(x))
	case float32:
		return hashFloat64(seed, float64(x))
	case float64:
		return hashFloat64(seed, x)
	case nil:
		return 0
	}
	v := reflect.ValueOf(k)
	switch v.Kind() {
	case reflect.String:
		return maphash.String(seed, v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashUint64(seed, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return hashUint64(seed, v.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat64(seed, v.Float())
	}
	return 0
}

// spread folds the high bits of h into the low bits used to pick a
// bucket, so that hash functions with weak low bits still spread out.
func spread(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
