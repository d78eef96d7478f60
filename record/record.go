// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package record

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/grailbio/bioio/field"
)

// Record is a fixed-arity heterogeneous container laid out by a Schema.
// A Record must not be copied by value; use Clone or CopyFrom.
type Record struct {
	noCopy noCopy
	schema *Schema
	// vals[i] is a *T, where T is the type of schema.cols[i].
	vals []any
}

// noCopy makes go vet's copylocks check flag Records copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Len returns the number of elements.
func (r *Record) Len() int { return len(r.vals) }

// Clear resets every element, in position order: elements whose type
// implements Clearer are cleared in place, the others are set to their zero
// value. Clear is idempotent.
func (r *Record) Clear() {
	for i, c := range r.schema.cols {
		c.clear(r.vals[i])
	}
}

// Clone returns a copy of r that shares no element storage with r, provided
// that element types with reference semantics implement Cloner.
func (r *Record) Clone() *Record {
	n := r.schema.New()
	n.CopyFrom(r)
	return n
}

// CopyFrom overwrites every element of r with a copy of the element of src.
// It panics if the schemas are not compatible.
func (r *Record) CopyFrom(src *Record) {
	if !r.schema.Compatible(src.schema) {
		panic(fmt.Sprintf("record.CopyFrom: schema %v is not compatible with %v", src.schema, r.schema))
	}
	for i, c := range r.schema.cols {
		c.copy(r.vals[i], src.vals[i])
	}
}

// Equal reports whether a and b have compatible schemas and equal elements.
func Equal(a, b *Record) bool {
	if !a.schema.Compatible(b.schema) {
		return false
	}
	for i, c := range a.schema.cols {
		if !c.equal(a.vals[i], b.vals[i]) {
			return false
		}
	}
	return true
}

// At returns a copy of the i'th element. Prefer Get, which is typed and
// addresses the element by field.
func (r *Record) At(i int) any {
	return r.schema.cols[i].load(r.vals[i])
}

// PtrAt returns a pointer (as *T) to the i'th element.
func (r *Record) PtrAt(i int) any {
	return r.vals[i]
}

// FieldAt returns the field of the i'th element.
func (r *Record) FieldAt(i int) field.Field {
	return r.schema.fields.At(i)
}

// Ref returns a pointer to the element for key k. Writes through the pointer
// modify r. Ref panics if r's schema lacks k's field, or stores a different
// type under it.
func Ref[T any](r *Record, k Key[T]) *T {
	i := r.schema.fields.IndexOf(k.f)
	if i == field.NPos {
		panic(fmt.Sprintf("record: schema %v does not contain field %v", r.schema, k.f))
	}
	p, ok := r.vals[i].(*T)
	if !ok {
		panic(fmt.Sprintf("record: field %v has type %v, not %v", k.f, r.schema.cols[i].Type(), k.typ))
	}
	return p
}

// Get returns the element for key k. For slice and map types the result
// shares storage with the record.
func Get[T any](r *Record, k Key[T]) T {
	return *Ref(r, k)
}

// Set assigns v to the element for key k. If T implements Cloner, a clone of v
// is stored.
func Set[T any](r *Record, k Key[T], v T) {
	*Ref(r, k) = k.cloneFn(v)
}

// Has reports whether r's schema contains k's field with type T.
func Has[T any](r *Record, k Key[T]) bool {
	i := r.schema.fields.IndexOf(k.f)
	if i == field.NPos {
		return false
	}
	_, ok := r.vals[i].(*T)
	return ok
}

// ByType returns a pointer to the only element of type T. It panics unless
// exactly one element has type T. Prefer Ref.
func ByType[T any](r *Record) *T {
	want := reflect.TypeOf((*T)(nil)).Elem()
	idx := -1
	for i, c := range r.schema.cols {
		if c.Type() != want {
			continue
		}
		if idx >= 0 {
			panic(fmt.Sprintf("record.ByType: type %v is ambiguous in schema %v", want, r.schema))
		}
		idx = i
	}
	if idx < 0 {
		panic(fmt.Sprintf("record.ByType: no element of type %v in schema %v", want, r.schema))
	}
	return r.vals[idx].(*T)
}

// String returns the record in the form "{seq:ACGT id:read1}".
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.schema.cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", c.Field(), c.load(r.vals[i]))
	}
	b.WriteByte('}')
	return b.String()
}
