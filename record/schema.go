// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package record

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioio/field"
)

// Schema is the layout of a record: an ordered list of columns with distinct
// fields. A Schema is immutable and safe for concurrent use.
type Schema struct {
	fields field.Set
	cols   []Column
}

// NewSchema creates a schema from the given columns, in order. It returns an
// error if a field appears twice or a column is a zero Key.
func NewSchema(cols ...Column) (*Schema, error) {
	fs := make([]field.Field, len(cols))
	for i, c := range cols {
		if c == nil || !c.valid() {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("record schema: column %d is not an initialized key", i))
		}
		fs[i] = c.Field()
	}
	set, err := field.NewSet(fs...)
	if err != nil {
		return nil, errors.E(err, "record schema")
	}
	return &Schema{fields: set, cols: append([]Column(nil), cols...)}, nil
}

// MustSchema is like NewSchema, but it panics on error.
func MustSchema(cols ...Column) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of elements in records of this schema.
func (s *Schema) Len() int { return len(s.cols) }

// Fields returns the field identifiers, in element order.
func (s *Schema) Fields() field.Set { return s.fields }

// Column returns the i'th column.
func (s *Schema) Column(i int) Column { return s.cols[i] }

// Type returns the type of the i'th element.
func (s *Schema) Type(i int) reflect.Type { return s.cols[i].Type() }

// IndexOf returns the position of f, or field.NPos if the schema lacks f.
func (s *Schema) IndexOf(f field.Field) int { return s.fields.IndexOf(f) }

// Select returns a schema with the columns for the given fields, in the
// order of fs. It returns an error if s lacks any of them.
func (s *Schema) Select(fs field.Set) (*Schema, error) {
	cols := make([]Column, fs.Len())
	for i := range cols {
		f := fs.At(i)
		idx, ok := s.fields.Lookup(f)
		if !ok {
			return nil, errors.E(errors.NotExist, fmt.Sprintf("record schema %v: no field %v", s, f))
		}
		cols[i] = s.cols[idx]
	}
	return NewSchema(cols...)
}

// Compatible reports whether records of s and o have the same layout.
func (s *Schema) Compatible(o *Schema) bool {
	if s == o {
		return true
	}
	if !s.fields.Equal(o.fields) {
		return false
	}
	for i, c := range s.cols {
		if c.Type() != o.cols[i].Type() {
			return false
		}
	}
	return true
}

// New creates a record whose elements are all zero values.
func (s *Schema) New() *Record {
	r := &Record{schema: s, vals: make([]any, len(s.cols))}
	for i, c := range s.cols {
		r.vals[i] = c.newValue()
	}
	return r
}

// Make creates a record from one value per element, in schema order. Each
// value must have exactly the element type; values with reference semantics
// are cloned if the type implements Cloner. Make panics if the number or types
// of values do not match the schema.
func (s *Schema) Make(vals ...any) *Record {
	if len(vals) != len(s.cols) {
		panic(fmt.Sprintf("record.Make: schema %v has %d elements, but got %d values", s, len(s.cols), len(vals)))
	}
	r := s.New()
	for i, v := range vals {
		if !s.cols[i].store(r.vals[i], v) {
			panic(fmt.Sprintf("record.Make: element %d (%v) has type %v, but got %T",
				i, s.cols[i].Field(), s.cols[i].Type(), v))
		}
	}
	return r
}

// String returns the schema in the form "{seq:[]uint8,id:string}".
func (s *Schema) String() string {
	parts := make([]string, len(s.cols))
	for i, c := range s.cols {
		parts[i] = c.Field().String() + ":" + c.Type().String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
