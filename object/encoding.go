// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aristanetworks/orderedmap"
	"github.com/fxamacker/cbor/v2"
)

// MarshalJSON implements json.Marshaler. Members are written in
// insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for name, v := range o.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("object: member name %q: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("object: member %q: %w", name, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. It replaces the members of
// o with those of the JSON object in data, in the order they appear.
// Nested objects decode as *Object, arrays as []any and numbers as
// json.Number. A name that appears twice keeps its first position and
// its last value. JSON null leaves o unchanged.
func (o *Object) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("object: expected a JSON object, found %v", tok)
	}
	members := orderedmap.New[string, any]()
	if err := decodeMembers(dec, members); err != nil {
		return fmt.Errorf("object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("object: unexpected data after JSON object")
	}
	o.members = members
	return nil
}

// decodeMembers reads name/value pairs up to and including the closing
// brace of an object whose opening brace has been consumed.
func decodeMembers(dec *json.Decoder, members *orderedmap.Map[string, any]) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected member name, found %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("member %q: %w", name, err)
		}
		members.Set(name, v)
	}
	_, err := dec.Token()
	return err
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		obj := New()
		if err := decodeMembers(dec, obj.members); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected %v", d)
}

// MarshalCBOR implements cbor.Marshaler. o is written as a definite
// length CBOR map with its members in insertion order. json.Number
// values, as produced by UnmarshalJSON, are written as CBOR integers
// when they hold one and as floats otherwise, also inside arrays.
func (o *Object) MarshalCBOR() ([]byte, error) {
	if o == nil {
		return cbor.Marshal(nil)
	}
	// The head of an unsigned integer and of a map differ only in the
	// major type bits.
	head, err := cbor.Marshal(uint64(o.Len()))
	if err != nil {
		return nil, err
	}
	head[0] |= 0xa0
	buf := bytes.NewBuffer(head)
	for name, v := range o.All() {
		k, err := cbor.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("object: member name %q: %w", name, err)
		}
		buf.Write(k)
		b, err := cbor.Marshal(cborValue(v))
		if err != nil {
			return nil, fmt.Errorf("object: member %q: %w", name, err)
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

func cborValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cborValue(e)
		}
		return out
	}
	return v
}
