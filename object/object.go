// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object provides Object, a document object whose members keep
// the order in which they were first added. It is the member store a
// serializer writes objects from and a deserializer reads them into:
// encoding an Object emits members in insertion order, and decoding one
// keeps the member order of the input.
package object

import (
	"iter"

	"github.com/aristanetworks/orderedmap"
)

// Object is an ordered set of named members. The zero value is an
// empty Object ready to use. Member values are arbitrary; nested
// objects are represented as *Object.
type Object struct {
	members *orderedmap.Map[string, any]
}

// New returns an empty Object.
func New() *Object {
	return &Object{members: orderedmap.New[string, any]()}
}

func (o *Object) init() {
	if o.members == nil {
		o.members = orderedmap.New[string, any]()
	}
}

// Set adds the member name with value v. If name is already present its
// value is replaced and it keeps its position; the previous value is
// returned with true.
func (o *Object) Set(name string, v any) (any, bool) {
	o.init()
	return o.members.Set(name, v)
}

// Get returns the value of member name.
func (o *Object) Get(name string) (any, bool) {
	if o == nil || o.members == nil {
		return nil, false
	}
	return o.members.Get(name)
}

// Has reports whether o has a member called name.
func (o *Object) Has(name string) bool {
	if o == nil || o.members == nil {
		return false
	}
	return o.members.Has(name)
}

// Delete removes member name, returning its value.
func (o *Object) Delete(name string) (any, bool) {
	if o == nil || o.members == nil {
		return nil, false
	}
	return o.members.Delete(name)
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.members.Len()
}

// Names returns the member names in insertion order.
func (o *Object) Names() []string {
	names := make([]string, 0, o.Len())
	for name := range o.All() {
		names = append(names, name)
	}
	return names
}

// All returns an iterator over the members in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil || o.members == nil {
			return
		}
		for name, v := range o.members.All() {
			if !yield(name, v) {
				return
			}
		}
	}
}
