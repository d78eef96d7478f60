// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package record

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Accessor reads and writes one element of records of a given schema. The
// element position is resolved once, by Bind, so that accessing an absent
// field fails when the accessor is created rather than on use.
type Accessor[T any] struct {
	schema *Schema
	index  int
	key    Key[T]
}

// Bind resolves key k against schema s. It returns an error if s lacks k's
// field or stores a different type under it.
func Bind[T any](s *Schema, k Key[T]) (Accessor[T], error) {
	i, ok := s.fields.Lookup(k.f)
	if !ok {
		return Accessor[T]{}, errors.E(errors.NotExist, fmt.Sprintf("record schema %v does not contain field %v", s, k.f))
	}
	if t := s.cols[i].Type(); t != k.typ {
		return Accessor[T]{}, errors.E(errors.Invalid, fmt.Sprintf("record schema %v: field %v has type %v, not %v", s, k.f, t, k.typ))
	}
	return Accessor[T]{schema: s, index: i, key: k}, nil
}

// MustBind is like Bind, but it panics on error.
func MustBind[T any](s *Schema, k Key[T]) Accessor[T] {
	a, err := Bind(s, k)
	if err != nil {
		panic(err)
	}
	return a
}

// Index returns the element position.
func (a Accessor[T]) Index() int { return a.index }

// Key returns the key the accessor was bound from.
func (a Accessor[T]) Key() Key[T] { return a.key }

// Ref returns a pointer to the element of r. It panics if r's schema is not
// compatible with the schema the accessor was bound to.
func (a Accessor[T]) Ref(r *Record) *T {
	if r.schema != a.schema && !r.schema.Compatible(a.schema) {
		panic(fmt.Sprintf("record: accessor for %v used on a record of schema %v", a.schema, r.schema))
	}
	return r.vals[a.index].(*T)
}

// Get returns the element of r.
func (a Accessor[T]) Get(r *Record) T { return *a.Ref(r) }

// Set assigns v to the element of r.
func (a Accessor[T]) Set(r *Record, v T) { *a.Ref(r) = a.key.cloneFn(v) }
