// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package record

import (
	"reflect"

	"github.com/grailbio/bioio/field"
)

// Clearer is implemented by element types that can reset themselves in place,
// typically containers that truncate but keep their capacity. The method must
// have a pointer receiver to be detected.
type Clearer interface {
	Clear()
}

// Cloner is implemented by element types with reference semantics, such as
// slices, to produce a copy that shares no storage with the receiver.
type Cloner[T any] interface {
	Clone() T
}

// Equaler is implemented by element types that define their own equality.
// Record.Equal uses it in preference to reflect.DeepEqual.
type Equaler[T any] interface {
	Equal(T) bool
}

var clearerType = reflect.TypeOf((*Clearer)(nil)).Elem()

// Column is one (field, type) pair of a Schema. Key is the only
// implementation.
type Column interface {
	// Field returns the field identifier.
	Field() field.Field
	// Type returns the element type.
	Type() reflect.Type

	valid() bool
	newValue() any
	load(p any) any
	store(p, v any) bool
	clear(p any)
	copy(dst, src any)
	equal(a, b any) bool
}

// Key binds a field identifier to the element type T. Keys are usually
// package-level variables shared by every schema that carries the field.
//
// The way elements are cleared, cloned and compared is decided once, when the
// key is created:
//
//   - Clear calls (*T).Clear if *T implements Clearer, and assigns the zero T
//     otherwise.
//   - Clone calls T.Clone if T implements Cloner[T], and assigns otherwise.
//   - Equal calls T.Equal if T implements Equaler[T], and uses
//     reflect.DeepEqual otherwise.
//
// A pointer T is a reference to storage the record does not own, such as a
// file header: it is always copied by assignment and compared by identity,
// even if T has Clone or Equal methods.
type Key[T any] struct {
	f       field.Field
	typ     reflect.Type
	clearFn func(*T)
	cloneFn func(T) T
	equalFn func(T, T) bool
}

// NewKey creates a key for field f holding values of type T.
func NewKey[T any](f field.Field) Key[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	k := Key[T]{f: f, typ: typ}

	if reflect.PointerTo(typ).Implements(clearerType) {
		k.clearFn = func(p *T) { any(p).(Clearer).Clear() }
	} else {
		k.clearFn = func(p *T) {
			var zero T
			*p = zero
		}
	}
	ptr := typ.Kind() == reflect.Pointer
	if !ptr && typ.Implements(reflect.TypeOf((*Cloner[T])(nil)).Elem()) {
		k.cloneFn = func(v T) T { return any(v).(Cloner[T]).Clone() }
	} else {
		k.cloneFn = func(v T) T { return v }
	}
	switch {
	case ptr:
		k.equalFn = func(a, b T) bool { return any(a) == any(b) }
	case typ.Implements(reflect.TypeOf((*Equaler[T])(nil)).Elem()):
		k.equalFn = func(a, b T) bool { return any(a).(Equaler[T]).Equal(b) }
	default:
		k.equalFn = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	return k
}

// Field implements Column.
func (k Key[T]) Field() field.Field { return k.f }

// Type implements Column.
func (k Key[T]) Type() reflect.Type { return k.typ }

func (k Key[T]) String() string {
	return k.f.String() + ":" + k.typ.String()
}

func (k Key[T]) valid() bool { return k.clearFn != nil && k.f.Valid() }

func (k Key[T]) newValue() any { return new(T) }

func (k Key[T]) load(p any) any { return *p.(*T) }

func (k Key[T]) store(p, v any) bool {
	x, ok := v.(T)
	if !ok {
		return false
	}
	*p.(*T) = k.cloneFn(x)
	return true
}

func (k Key[T]) clear(p any) { k.clearFn(p.(*T)) }

func (k Key[T]) copy(dst, src any) { *dst.(*T) = k.cloneFn(*src.(*T)) }

func (k Key[T]) equal(a, b any) bool { return k.equalFn(*a.(*T), *b.(*T)) }
