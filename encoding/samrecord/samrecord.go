// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package samrecord converts between sam.Records and alignment records laid
// out by seqrecord keys.
package samrecord

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioio/field"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/bioio/seqrecord"
	"github.com/grailbio/hts/sam"
)

// Converter copies values between sam.Records and records of one schema.
// A Converter is immutable and can be shared by multiple goroutines.
type Converter struct {
	schema *record.Schema
	header *sam.Header
	refs   map[string]*sam.Reference
	fill   []func(dst *record.Record, src *sam.Record)
	put    []func(dst *sam.Record, src *record.Record) error
}

// NewConverter creates a converter for records of schema s. Every field of s
// must be one of seq, id, qual, offset, ref_id, ref_offset, header_ptr, flag,
// mate, mapq, cigar and tags, with the type of the matching seqrecord key.
//
// The header h is stored in the header_ptr field, and it is used to resolve
// reference names in ToSAM. It may be nil if all reads are unmapped.
func NewConverter(s *record.Schema, h *sam.Header) (*Converter, error) {
	c := &Converter{schema: s, header: h, refs: map[string]*sam.Reference{}}
	if h != nil {
		for _, ref := range h.Refs() {
			c.refs[ref.Name()] = ref
		}
	}
	for i := 0; i < s.Len(); i++ {
		var err error
		switch f := s.Fields().At(i); f {
		case field.Seq:
			err = add(c, seqrecord.SeqKey,
				func(p *seqrecord.Sequence, r *sam.Record) { *p = append((*p)[:0], r.Seq.Expand()...) },
				func(r *sam.Record, p *seqrecord.Sequence) error {
					r.Seq = sam.NewSeq(*p)
					return nil
				})
		case field.ID:
			err = add(c, seqrecord.IDKey,
				func(p *string, r *sam.Record) { *p = r.Name },
				func(r *sam.Record, p *string) error {
					r.Name = *p
					return nil
				})
		case field.Qual:
			err = add(c, seqrecord.QualKey,
				func(p *seqrecord.Quality, r *sam.Record) {
					*p = (*p)[:0]
					if !missingQual(r.Qual) {
						*p = append(*p, r.Qual...)
					}
				},
				func(r *sam.Record, p *seqrecord.Quality) error {
					r.Qual = append([]byte(nil), *p...)
					return nil
				})
		case field.Offset:
			// The offset is implied by the cigar, so it is not written back.
			err = add(c, seqrecord.OffsetKey,
				func(p *int, r *sam.Record) { *p = leadingSoftClip(r.Cigar) },
				func(r *sam.Record, p *int) error { return nil })
		case field.RefID:
			err = add(c, seqrecord.RefIDKey,
				func(p *string, r *sam.Record) { *p = refName(r.Ref) },
				func(r *sam.Record, p *string) (err error) {
					r.Ref, err = c.lookupRef(*p)
					return
				})
		case field.RefOffset:
			err = add(c, seqrecord.RefOffsetKey,
				func(p *int, r *sam.Record) { *p = r.Pos },
				func(r *sam.Record, p *int) error {
					r.Pos = *p
					return nil
				})
		case field.HeaderPtr:
			err = add(c, seqrecord.HeaderKey,
				func(p **sam.Header, r *sam.Record) { *p = c.header },
				func(r *sam.Record, p **sam.Header) error { return nil })
		case field.Flag:
			err = add(c, seqrecord.FlagKey,
				func(p *sam.Flags, r *sam.Record) { *p = r.Flags },
				func(r *sam.Record, p *sam.Flags) error {
					r.Flags = *p
					return nil
				})
		case field.Mate:
			err = add(c, seqrecord.MateKey,
				func(p *seqrecord.Mate, r *sam.Record) {
					*p = seqrecord.Mate{Ref: refName(r.MateRef), Pos: r.MatePos, TempLen: r.TempLen}
				},
				func(r *sam.Record, p *seqrecord.Mate) (err error) {
					if r.MateRef, err = c.lookupRef(p.Ref); err != nil {
						return err
					}
					r.MatePos, r.TempLen = p.Pos, p.TempLen
					return nil
				})
		case field.MapQ:
			err = add(c, seqrecord.MapQKey,
				func(p *byte, r *sam.Record) { *p = r.MapQ },
				func(r *sam.Record, p *byte) error {
					r.MapQ = *p
					return nil
				})
		case field.Cigar:
			err = add(c, seqrecord.CigarKey,
				func(p *seqrecord.Cigar, r *sam.Record) { *p = append((*p)[:0], r.Cigar...) },
				func(r *sam.Record, p *seqrecord.Cigar) error {
					r.Cigar = sam.Cigar(p.Clone())
					return nil
				})
		case field.Tags:
			err = add(c, seqrecord.TagsKey,
				func(p *seqrecord.Tags, r *sam.Record) {
					*p = (*p)[:0]
					for _, aux := range r.AuxFields {
						*p = append(*p, append(sam.Aux(nil), aux...))
					}
				},
				func(r *sam.Record, p *seqrecord.Tags) error {
					r.AuxFields = sam.AuxFields(p.Clone())
					return nil
				})
		default:
			err = errors.E(errors.NotSupported, fmt.Sprintf("samrecord: field %v has no SAM equivalent", f))
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// add binds key k in c's schema and registers the conversion functions for it.
func add[T any](c *Converter, k record.Key[T], fill func(*T, *sam.Record), put func(*sam.Record, *T) error) error {
	a, err := record.Bind(c.schema, k)
	if err != nil {
		return errors.E(err, "samrecord")
	}
	c.fill = append(c.fill, func(dst *record.Record, src *sam.Record) { fill(a.Ref(dst), src) })
	c.put = append(c.put, func(dst *sam.Record, src *record.Record) error { return put(dst, a.Ref(src)) })
	return nil
}

// Schema returns the schema the converter was created for.
func (c *Converter) Schema() *record.Schema { return c.schema }

// Header returns the header the converter was created with.
func (c *Converter) Header() *sam.Header { return c.header }

// Fill overwrites every element of dst with the corresponding value of src.
// Slice-typed elements reuse dst's storage, so filling one record per read
// does not allocate once the record has grown to the longest read. dst shares
// no storage with src.
//
// REQUIRES: dst's schema is compatible with c.Schema().
func (c *Converter) Fill(dst *record.Record, src *sam.Record) {
	for _, fill := range c.fill {
		fill(dst, src)
	}
}

// ToSAM creates a sam.Record from src. Fields absent from the schema are left
// unset, except positions, which default to -1. If src has a sequence but no
// qualities, the qualities are set to 0xff, as BAM requires.
func (c *Converter) ToSAM(src *record.Record) (*sam.Record, error) {
	r := &sam.Record{Pos: -1, MatePos: -1}
	for _, put := range c.put {
		if err := put(r, src); err != nil {
			return nil, err
		}
	}
	if len(r.Qual) == 0 && r.Seq.Length > 0 {
		r.Qual = make([]byte, r.Seq.Length)
		for i := range r.Qual {
			r.Qual[i] = 0xff
		}
	}
	return r, nil
}

func (c *Converter) lookupRef(name string) (*sam.Reference, error) {
	if name == "" {
		return nil, nil
	}
	ref, ok := c.refs[name]
	if !ok {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("samrecord: reference %q not in header", name))
	}
	return ref, nil
}

func refName(ref *sam.Reference) string {
	if ref == nil {
		return ""
	}
	return ref.Name()
}

// leadingSoftClip returns the number of soft-clipped bases at the start of
// the read. Hard clips do not count, since their bases are not stored.
func leadingSoftClip(cigar sam.Cigar) int {
	for _, op := range cigar {
		switch op.Type() {
		case sam.CigarHardClipped:
		case sam.CigarSoftClipped:
			return op.Len()
		default:
			return 0
		}
	}
	return 0
}

// missingQual reports whether qual is the BAM encoding of "no qualities".
func missingQual(qual []byte) bool {
	if len(qual) == 0 {
		return true
	}
	for _, q := range qual {
		if q != 0xff {
			return false
		}
	}
	return true
}
