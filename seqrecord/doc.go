// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package seqrecord defines the element types and keys of the standard
// sequence, alignment and structure records, and one schema per file kind.
//
// Format readers and writers pick the schema for their kind, or a subset of it
// obtained with record.Schema.Select, and populate records through the keys.
package seqrecord
