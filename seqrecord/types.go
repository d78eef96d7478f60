// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package seqrecord

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
)

// Sequence is a string of nucleotide or amino acid letters, e.g. "ACGT". It is
// also used for dot-bracket structure strings.
type Sequence []byte

// Clear truncates s, keeping its storage.
func (s *Sequence) Clear() { *s = (*s)[:0] }

// Clone returns a copy of s.
func (s Sequence) Clone() Sequence { return append(Sequence(nil), s...) }

// Equal compares the letters; a nil and an empty sequence are equal.
func (s Sequence) Equal(o Sequence) bool { return bytes.Equal(s, o) }

func (s Sequence) String() string { return string(s) }

// Quality holds Phred scores, one per base. The values are not offset by 33.
type Quality []byte

// Clear truncates q, keeping its storage.
func (q *Quality) Clear() { *q = (*q)[:0] }

// Clone returns a copy of q.
func (q Quality) Clone() Quality { return append(Quality(nil), q...) }

// Equal compares the scores; a nil and an empty list are equal.
func (q Quality) Equal(o Quality) bool { return bytes.Equal(q, o) }

// String returns the scores in the FASTQ encoding (Phred+33).
func (q Quality) String() string {
	buf := make([]byte, len(q))
	for i, v := range q {
		buf[i] = v + 33
	}
	return string(buf)
}

// ParseQuality converts a Phred+33 string to a Quality. Characters outside
// '!'..'~' are rejected.
func ParseQuality(v string) (Quality, error) {
	q := make(Quality, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] < '!' || v[i] > '~' {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("quality %q: invalid Phred+33 character %q at %d", v, v[i], i))
		}
		q[i] = v[i] - 33
	}
	return q, nil
}

// Vector is a list of values, such as reactivities.
type Vector[E comparable] []E

// Clear truncates v, keeping its storage.
func (v *Vector[E]) Clear() { *v = (*v)[:0] }

// Clone returns a copy of v.
func (v Vector[E]) Clone() Vector[E] { return append(Vector[E](nil), v...) }

// Equal compares the values; a nil and an empty vector are equal.
func (v Vector[E]) Equal(o Vector[E]) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// BasePair is one possible interaction partner of a base.
type BasePair struct {
	// Partner is the 0-based position of the other base.
	Partner int
	// Prob is the probability of the interaction.
	Prob float64
}

// BPP is a base pair probability matrix. BPP[i] lists the interactions of the
// i'th base.
type BPP [][]BasePair

// Clear truncates m, keeping its storage.
func (m *BPP) Clear() { *m = (*m)[:0] }

// Clone returns a deep copy of m.
func (m BPP) Clone() BPP {
	if m == nil {
		return nil
	}
	c := make(BPP, len(m))
	for i, row := range m {
		c[i] = append([]BasePair(nil), row...)
	}
	return c
}

// Equal compares the matrices element by element.
func (m BPP) Equal(o BPP) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Mate describes the other read of a pair.
type Mate struct {
	// Ref is the name of the mate's reference sequence. Empty if unknown.
	Ref string
	// Pos is the 0-based position of the mate, -1 if unknown.
	Pos int
	// TempLen is the observed template length.
	TempLen int
}

// Cigar is a list of CIGAR operations.
type Cigar []sam.CigarOp

// Clear truncates c, keeping its storage.
func (c *Cigar) Clear() { *c = (*c)[:0] }

// Clone returns a copy of c.
func (c Cigar) Clone() Cigar { return append(Cigar(nil), c...) }

// Equal compares the operations; a nil and an empty cigar are equal.
func (c Cigar) Equal(o Cigar) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// String returns the SAM text form, e.g. "10M2I5M", or "*" if c is empty.
func (c Cigar) String() string { return sam.Cigar(c).String() }

// Tags holds the optional fields of a SAM record.
type Tags []sam.Aux

// Clear truncates t, keeping its storage.
func (t *Tags) Clear() { *t = (*t)[:0] }

// Clone returns a deep copy of t.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	c := make(Tags, len(t))
	for i, aux := range t {
		c[i] = append(sam.Aux(nil), aux...)
	}
	return c
}

// Equal compares the tags in order.
func (t Tags) Equal(o Tags) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !bytes.Equal(t[i], o[i]) {
			return false
		}
	}
	return true
}

// Get returns the first tag named tag, or nil.
func (t Tags) Get(tag sam.Tag) sam.Aux {
	return sam.AuxFields(t).Get(tag)
}

// String returns the tags in SAM text form, tab separated.
func (t Tags) String() string {
	parts := make([]string, len(t))
	for i, aux := range t {
		parts[i] = aux.String()
	}
	return strings.Join(parts, "\t")
}
