// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package field defines the closed vocabulary of data slots that a sequence,
// alignment or structure file record may carry, and Set, an ordered list of
// distinct fields that determines the layout of a record.
//
// The position of a field within a Set is stable, and it is the index used by
// positional lookups in package record.
package field
