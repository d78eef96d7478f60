// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package seqrecord

import (
	"fmt"

	"github.com/grailbio/bioio/field"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/hts/sam"
)

// Keys shared by all file kinds.
var (
	SeqKey    = record.NewKey[Sequence](field.Seq)
	IDKey     = record.NewKey[string](field.ID)
	QualKey   = record.NewKey[Quality](field.Qual)
	OffsetKey = record.NewKey[int](field.Offset)
)

// Keys of structure files.
var (
	BPPKey       = record.NewKey[BPP](field.BPP)
	StructureKey = record.NewKey[Sequence](field.Structure)
	EnergyKey    = record.NewKey[float64](field.Energy)
	ReactKey     = record.NewKey[Vector[float64]](field.React)
	ReactErrKey  = record.NewKey[Vector[float64]](field.ReactErr)
	CommentKey   = record.NewKey[string](field.Comment)
)

// Keys of alignment files.
var (
	RefIDKey     = record.NewKey[string](field.RefID)
	RefSeqKey    = record.NewKey[Sequence](field.RefSeq)
	RefOffsetKey = record.NewKey[int](field.RefOffset)
	HeaderKey    = record.NewKey[*sam.Header](field.HeaderPtr)
	FlagKey      = record.NewKey[sam.Flags](field.Flag)
	MateKey      = record.NewKey[Mate](field.Mate)
	MapQKey      = record.NewKey[byte](field.MapQ)
	CigarKey     = record.NewKey[Cigar](field.Cigar)
	TagsKey      = record.NewKey[Tags](field.Tags)
	BitScoreKey  = record.NewKey[float64](field.BitScore)
	EValueKey    = record.NewKey[float64](field.EValue)
)

var (
	// SequenceSchema is the layout of FASTA and FASTQ records.
	SequenceSchema = record.MustSchema(SeqKey, IDKey, QualKey)

	// AlignmentSchema is the layout of SAM and BAM records.
	AlignmentSchema = record.MustSchema(SeqKey, IDKey, QualKey, OffsetKey,
		RefIDKey, RefOffsetKey, HeaderKey, FlagKey, MateKey, MapQKey, CigarKey, TagsKey)

	// StructureSchema is the layout of RNA structure records.
	StructureSchema = record.MustSchema(SeqKey, IDKey, QualKey, OffsetKey,
		BPPKey, StructureKey, EnergyKey, ReactKey, ReactErrKey, CommentKey)
)

// SchemaFor returns the standard schema of the given file kind.
func SchemaFor(k field.Kind) *record.Schema {
	switch k {
	case field.SequenceFile:
		return SequenceSchema
	case field.AlignmentFile:
		return AlignmentSchema
	case field.StructureFile:
		return StructureSchema
	}
	panic(fmt.Sprintf("seqrecord: unknown file kind %v", k))
}

// SelectSchema returns the columns of the standard schema of kind k for the
// given fields, in the given order. An empty set selects the whole schema.
func SelectSchema(k field.Kind, fs field.Set) (*record.Schema, error) {
	s := SchemaFor(k)
	if fs.Len() == 0 {
		return s, nil
	}
	return s.Select(fs)
}
