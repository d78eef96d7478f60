// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package field

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// NPos is returned by Set.IndexOf when the field is absent. It is the largest
// representable index and must never be used to index a record.
const NPos = int(^uint(0) >> 1)

// Set is an ordered list of distinct fields. The zero Set is empty.
//
// Set is an immutable value. It is safe to copy and to share between
// goroutines.
type Set struct {
	fields []Field
	// pos[f] is the index of f in fields, plus one. Zero means absent.
	pos [NumFields]uint8
}

// NewSet creates a set of the given fields, in the given order. It returns an
// error if a field is repeated or invalid.
func NewSet(fs ...Field) (Set, error) {
	s := Set{fields: make([]Field, len(fs))}
	for i, f := range fs {
		if !f.Valid() {
			return Set{}, errors.E(errors.Invalid, fmt.Sprintf("field set: invalid field %v at position %d", f, i))
		}
		if s.pos[f] != 0 {
			return Set{}, errors.E(errors.Invalid,
				fmt.Sprintf("field set: field %v included twice (positions %d and %d)", f, s.pos[f]-1, i))
		}
		s.fields[i] = f
		s.pos[f] = uint8(i + 1)
	}
	return s, nil
}

// MustSet is like NewSet, but it panics on error. It is meant for
// package-level definitions, where a repeated field is a programming error.
func MustSet(fs ...Field) Set {
	s, err := NewSet(fs...)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseSet parses a comma-separated list of field names, e.g. "seq,id,qual".
// An empty string yields an empty set.
func ParseSet(v string) (Set, error) {
	if strings.TrimSpace(v) == "" {
		return Set{}, nil
	}
	var fs []Field
	for _, name := range strings.Split(v, ",") {
		f, err := Parse(name)
		if err != nil {
			return Set{}, err
		}
		fs = append(fs, f)
	}
	return NewSet(fs...)
}

// Len returns the number of fields in the set.
func (s Set) Len() int { return len(s.fields) }

// IndexOf returns the 0-based position of f, or NPos if f is not in the set.
func (s Set) IndexOf(f Field) int {
	if !f.Valid() || s.pos[f] == 0 {
		return NPos
	}
	return int(s.pos[f]) - 1
}

// Lookup is like IndexOf, but it reports absence explicitly.
func (s Set) Lookup(f Field) (int, bool) {
	i := s.IndexOf(f)
	return i, i != NPos
}

// Contains reports whether f is in the set.
func (s Set) Contains(f Field) bool {
	return s.IndexOf(f) != NPos
}

// At returns the field at position i.
//
// REQUIRES: 0 <= i < s.Len()
func (s Set) At(i int) Field { return s.fields[i] }

// Fields returns a copy of the fields, in order.
func (s Set) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Equal reports whether the two sets hold the same fields in the same order.
func (s Set) Equal(o Set) bool {
	if len(s.fields) != len(o.fields) {
		return false
	}
	for i, f := range s.fields {
		if o.fields[i] != f {
			return false
		}
	}
	return true
}

// String returns the set in the form "{seq,id,qual}".
func (s Set) String() string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}
