// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package seqrecord_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioio/field"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/bioio/seqrecord"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasMatchKinds(t *testing.T) {
	for _, k := range field.Kinds() {
		s := seqrecord.SchemaFor(k)
		for i := 0; i < s.Len(); i++ {
			f := s.Fields().At(i)
			expect.True(t, f.UsedBy(k), "%v schema holds %v", k, f)
		}
	}
	expect.EQ(t, "{seq,id,qual}", seqrecord.SequenceSchema.Fields().String())
	assert.Panics(t, func() { seqrecord.SchemaFor(field.Kind(9)) })
}

func TestSequenceRecord(t *testing.T) {
	qual, err := seqrecord.ParseQuality("II#!")
	require.NoError(t, err)
	r := seqrecord.SequenceSchema.Make(seqrecord.Sequence("ACGT"), "read1", qual)
	expect.EQ(t, "ACGT", record.Get(r, seqrecord.SeqKey).String())
	expect.EQ(t, "read1", record.Get(r, seqrecord.IDKey))
	expect.EQ(t, seqrecord.Quality{40, 40, 2, 0}, record.Get(r, seqrecord.QualKey))
	expect.EQ(t, "II#!", record.Get(r, seqrecord.QualKey).String())

	r.Clear()
	expect.True(t, record.Equal(seqrecord.SequenceSchema.New(), r))
	r.Clear()
	expect.True(t, record.Equal(seqrecord.SequenceSchema.New(), r))
}

func TestAlignmentClear(t *testing.T) {
	aux, err := sam.NewAux(sam.NewTag("NM"), 2)
	require.NoError(t, err)
	r := seqrecord.AlignmentSchema.New()
	record.Set(r, seqrecord.SeqKey, seqrecord.Sequence("ACGT"))
	record.Set(r, seqrecord.FlagKey, sam.Paired|sam.Read1)
	record.Set(r, seqrecord.MateKey, seqrecord.Mate{Ref: "chr1", Pos: 100, TempLen: 250})
	record.Set(r, seqrecord.CigarKey, seqrecord.Cigar{sam.NewCigarOp(sam.CigarMatch, 4)})
	record.Set(r, seqrecord.TagsKey, seqrecord.Tags{aux})
	record.Set(r, seqrecord.MapQKey, byte(60))

	c := r.Clone()
	expect.True(t, record.Equal(r, c))
	expect.EQ(t, "4M", record.Get(c, seqrecord.CigarKey).String())
	expect.EQ(t, aux, record.Get(c, seqrecord.TagsKey).Get(sam.NewTag("NM")))

	r.Clear()
	expect.EQ(t, seqrecord.Mate{}, record.Get(r, seqrecord.MateKey))
	expect.EQ(t, sam.Flags(0), record.Get(r, seqrecord.FlagKey))
	expect.EQ(t, 0, len(record.Get(r, seqrecord.CigarKey)))
	expect.EQ(t, 0, len(record.Get(r, seqrecord.TagsKey)))
	expect.EQ(t, byte(0), record.Get(r, seqrecord.MapQKey))
	expect.True(t, record.Equal(seqrecord.AlignmentSchema.New(), r))

	// The clone owns its tags.
	expect.EQ(t, aux.String(), record.Get(c, seqrecord.TagsKey).String())
}

func TestParseQualityInvalid(t *testing.T) {
	for _, v := range []string{" ", "II\x1f", "\x7f"} {
		_, err := seqrecord.ParseQuality(v)
		assert.True(t, errors.Is(errors.Invalid, err), "%q", v)
	}
	q, err := seqrecord.ParseQuality("")
	require.NoError(t, err)
	expect.EQ(t, 0, len(q))
}

func TestHeaderShared(t *testing.T) {
	h, err := sam.NewHeader(nil, nil)
	require.NoError(t, err)

	r := seqrecord.AlignmentSchema.New()
	c := r.Clone()
	expect.True(t, record.Get(c, seqrecord.HeaderKey) == nil)

	record.Set(r, seqrecord.HeaderKey, h)
	expect.True(t, record.Get(r, seqrecord.HeaderKey) == h)
	c = r.Clone()
	expect.True(t, record.Get(c, seqrecord.HeaderKey) == h)
	expect.True(t, record.Equal(r, c))
	c.CopyFrom(seqrecord.AlignmentSchema.New())
	expect.True(t, record.Get(c, seqrecord.HeaderKey) == nil)

	s := record.MustSchema(seqrecord.HeaderKey)
	expect.True(t, record.Get(s.Make(h), seqrecord.HeaderKey) == h)
	expect.True(t, record.Get(s.Make((*sam.Header)(nil)), seqrecord.HeaderKey) == nil)
}

func TestStructureRecord(t *testing.T) {
	r := seqrecord.StructureSchema.New()
	record.Set(r, seqrecord.SeqKey, seqrecord.Sequence("GGGAAACCC"))
	record.Set(r, seqrecord.StructureKey, seqrecord.Sequence("(((...)))"))
	record.Set(r, seqrecord.EnergyKey, -1.5)
	record.Set(r, seqrecord.ReactKey, seqrecord.Vector[float64]{0.1, 0.2})
	record.Set(r, seqrecord.BPPKey, seqrecord.BPP{{{Partner: 8, Prob: 0.9}}, nil})

	c := r.Clone()
	(*record.Ref(c, seqrecord.BPPKey))[0][0].Prob = 0.5
	expect.EQ(t, 0.9, record.Get(r, seqrecord.BPPKey)[0][0].Prob)
	expect.False(t, record.Equal(r, c))

	r.Clear()
	expect.EQ(t, 0.0, record.Get(r, seqrecord.EnergyKey))
	expect.EQ(t, 0, len(record.Get(r, seqrecord.ReactKey)))
	expect.EQ(t, 0, len(record.Get(r, seqrecord.BPPKey)))
	expect.True(t, record.Equal(seqrecord.StructureSchema.New(), r))
}

func TestSelectSchema(t *testing.T) {
	s, err := seqrecord.SelectSchema(field.AlignmentFile, field.MustSet(field.RefOffset, field.Seq))
	require.NoError(t, err)
	expect.EQ(t, "{ref_offset,seq}", s.Fields().String())

	s, err = seqrecord.SelectSchema(field.SequenceFile, field.Set{})
	require.NoError(t, err)
	expect.EQ(t, seqrecord.SequenceSchema, s)

	_, err = seqrecord.SelectSchema(field.SequenceFile, field.MustSet(field.Cigar))
	assert.Error(t, err)
}
