// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package record provides Record, a fixed-arity heterogeneous container whose
// elements are addressed by field identifier.
//
// A record layout is described by a Schema, an ordered list of Keys. Each Key
// pairs a field.Field with the Go type stored under it, so the list of
// identifiers and the list of types cannot fall out of step:
//
//	var (
//		Seq  = record.NewKey[[]byte](field.Seq)
//		Name = record.NewKey[string](field.ID)
//
//		schema = record.MustSchema(Seq, Name)
//	)
//
//	r := schema.New()
//	record.Set(r, Name, "read1")
//	*record.Ref(r, Seq) = append(*record.Ref(r, Seq), 'A')
//	r.Clear()
//
// Elements can also be read by position (Record.At) or by type (ByType), but
// access by field is preferred: it stays unambiguous when two elements share a
// type.
//
// Layout errors, such as a field listed twice, are reported when the Schema is
// built. MustSchema and MustBind turn them into panics so that package-level
// schemas fail at program initialization. Accessing a field that is absent from
// a record's schema is a programming error and panics.
//
// A Record owns its elements. Records must not be copied by value; use Clone or
// CopyFrom instead. A Record is not safe for concurrent mutation.
package record
