// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package field

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Field identifies one slot of a file record.
type Field uint8

const (
	// Fields shared by multiple file kinds.

	// Seq is the sequence, usually a range of nucleotides or amino acids.
	Seq Field = iota
	// ID is the identifier, usually a string.
	ID
	// Qual holds the qualities, usually in Phred score notation.
	Qual
	// Offset is the 0-based start position of Seq relative to the read.
	Offset

	// Fields unique to structure files.

	// BPP is the base pair probability matrix of interactions.
	BPP
	// Structure holds fixed interactions, usually a dot-bracket string.
	Structure
	// StructuredSeq combines the sequence and the fixed interactions.
	StructuredSeq
	// Energy is the energy of a folded sequence.
	Energy
	// React holds the reactivity values of the sequence characters.
	React
	// ReactErr holds the reactivity errors corresponding to React.
	ReactErr
	// Comment is a free-form comment.
	Comment

	// Fields unique to alignment files.

	// Alignment is the pairwise alignment object.
	Alignment
	// RefID is the identifier of the reference sequence Seq was aligned to.
	RefID
	// RefSeq is the reference sequence.
	RefSeq
	// RefOffset is the 0-based alignment start position on RefSeq.
	RefOffset
	// HeaderPtr points to the file header.
	HeaderPtr
	// Flag holds the SAM flag bits.
	Flag
	// Mate holds the mate reference, position and template length.
	Mate
	// MapQ is the mapping quality of the alignment.
	MapQ
	// Cigar is the list of CIGAR operations.
	Cigar
	// Tags holds the optional SAM tags.
	Tags
	// BitScore is the bit score of the alignment.
	BitScore
	// EValue is the e-value of the alignment.
	EValue

	// UserDefined0 through UserDefined9 are reserved for application-specific
	// formats and specializations.
	UserDefined0
	UserDefined1
	UserDefined2
	UserDefined3
	UserDefined4
	UserDefined5
	UserDefined6
	UserDefined7
	UserDefined8
	UserDefined9

	// FieldInvalid is a sentinel
	FieldInvalid
	MinField  = Seq
	NumFields = int(FieldInvalid)
)

var fieldNames = [NumFields]string{
	"seq",
	"id",
	"qual",
	"offset",
	"bpp",
	"structure",
	"structured_seq",
	"energy",
	"react",
	"react_err",
	"comment",
	"alignment",
	"ref_id",
	"ref_seq",
	"ref_offset",
	"header_ptr",
	"flag",
	"mate",
	"mapq",
	"cigar",
	"tags",
	"bit_score",
	"evalue",
	"user_defined_0",
	"user_defined_1",
	"user_defined_2",
	"user_defined_3",
	"user_defined_4",
	"user_defined_5",
	"user_defined_6",
	"user_defined_7",
	"user_defined_8",
	"user_defined_9",
}

// Valid reports whether f names one of the fields above.
func (f Field) Valid() bool {
	return int(f) < NumFields
}

func (f Field) String() string {
	if f.Valid() {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field%d", f)
}

// Parse converts a string to a Field. The match is case insensitive, so both
// "ref_id" and "REF_ID" return RefID.
func Parse(v string) (Field, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for f, name := range fieldNames {
		if name == v {
			return Field(f), nil
		}
	}
	return FieldInvalid, errors.E(errors.Invalid, fmt.Sprintf("%q: invalid field", v))
}

// All returns every valid field in declaration order.
func All() []Field {
	fs := make([]Field, NumFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}
