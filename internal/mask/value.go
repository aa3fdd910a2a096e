// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mask implements the redaction pass applied to request data before
// it reaches any audit sink.
//
// Request data is modelled as a [Value]: an explicit tagged variant over
// scalars (null, string, number, bool), keyed mappings and ordered
// sequences. [Mask] walks a Value structurally and replaces every sensitive
// scalar with asterisks of the same length.
package mask

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// maxDepth bounds container nesting accepted by [Parse].
const maxDepth = 512

// Kind tags the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMapping
	KindSequence
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a recursively typed piece of request data.
//
// The zero Value is null. Values are immutable: constructors copy their
// arguments and no method mutates the receiver.
type Value struct {
	kind Kind

	// text holds the textual form of scalars. Numbers keep the literal
	// they were decoded from so masking preserves the original length.
	text string

	fields map[string]Value
	items  []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string scalar.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a number scalar carrying the literal n.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, text: n.String()}
}

// Bool returns a boolean scalar.
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Mapping returns a keyed mapping holding a copy of fields.
func Mapping(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Value{kind: KindMapping, fields: copied}
}

// Sequence returns an ordered sequence holding a copy of items.
func Sequence(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindSequence, items: copied}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsContainer reports whether v is a mapping or a sequence.
func (v Value) IsContainer() bool {
	return v.kind == KindMapping || v.kind == KindSequence
}

// Text returns the stringified form of a scalar. It is empty for null and
// for containers.
func (v Value) Text() string {
	return v.text
}

// Len returns the number of fields of a mapping, the number of items of a
// sequence and the length of the text of a scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindSequence:
		return len(v.items)
	default:
		return len(v.text)
	}
}

// IsEmpty reports whether v carries no data: null, an empty string, an
// empty mapping or an empty sequence.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString, KindMapping, KindSequence:
		return v.Len() == 0
	default:
		return false
	}
}

// Field returns the value stored under key in a mapping.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// With returns a copy of the mapping v with key set to child. Values of
// other kinds are returned unchanged.
func (v Value) With(key string, child Value) Value {
	if v.kind != KindMapping {
		return v
	}
	fields := make(map[string]Value, len(v.fields)+1)
	for k, f := range v.fields {
		fields[k] = f
	}
	fields[key] = child
	return Value{kind: KindMapping, fields: fields}
}

// Keys returns the sorted keys of a mapping.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the items of a sequence.
func (v Value) Items() []Value {
	items := make([]Value, len(v.items))
	copy(items, v.items)
	return items
}

// MarshalJSON implements [json.Marshaler]. Mapping keys are emitted in
// sorted order, so the output is canonical for a given value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.text)
	case KindNumber, KindBool:
		return []byte(v.text), nil
	case KindMapping:
		if v.fields == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.fields)
	case KindSequence:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, v.kind)
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse decodes a single JSON document into a Value. Numbers keep their
// literal form.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decode(dec, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, ErrTrailingData
	}

	return v, nil
}

func decode(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, ErrTooDeep
	}

	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			fields := make(map[string]Value)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				child, err := decode(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				fields[key] = child
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindMapping, fields: fields}, nil
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				child, err := decode(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindSequence, items: items}, nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromHeader converts HTTP headers into a mapping with lower-cased keys.
// Single-valued headers become strings, repeated headers sequences.
func FromHeader(h http.Header) Value {
	fields := make(map[string]Value, len(h))
	for k, values := range h {
		fields[strings.ToLower(k)] = fromStrings(values)
	}
	return Value{kind: KindMapping, fields: fields}
}

// FromValues converts query parameters into a mapping.
func FromValues(values url.Values) Value {
	fields := make(map[string]Value, len(values))
	for k, vs := range values {
		fields[k] = fromStrings(vs)
	}
	return Value{kind: KindMapping, fields: fields}
}

// FromStringMap converts a flat string map (e.g. route parameters) into a
// mapping.
func FromStringMap(m map[string]string) Value {
	fields := make(map[string]Value, len(m))
	for k, s := range m {
		fields[k] = String(s)
	}
	return Value{kind: KindMapping, fields: fields}
}

func fromStrings(values []string) Value {
	if len(values) == 1 {
		return String(values[0])
	}
	items := make([]Value, len(values))
	for i, s := range values {
		items[i] = String(s)
	}
	return Value{kind: KindSequence, items: items}
}
