// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package field

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Kind is a family of file formats that share a record layout.
type Kind uint8

const (
	// SequenceFile covers FASTA, FASTQ and similar.
	SequenceFile Kind = iota
	// AlignmentFile covers SAM, BAM and similar.
	AlignmentFile
	// StructureFile covers RNA structure formats such as Vienna.
	StructureFile

	numKinds = 3
)

var kindNames = [numKinds]string{"sequence", "alignment", "structure"}

func (k Kind) String() string {
	if int(k) < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind%d", k)
}

// ParseKind converts "sequence", "alignment" or "structure" to a Kind.
func ParseKind(v string) (Kind, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for k, name := range kindNames {
		if name == v {
			return Kind(k), nil
		}
	}
	return 0, errors.E(errors.Invalid, fmt.Sprintf("%q: invalid file kind", v))
}

// Kinds lists all file kinds.
func Kinds() []Kind {
	return []Kind{SequenceFile, AlignmentFile, StructureFile}
}

// kindMask is a bitmap of the kinds that use each field.
var kindMask = func() (m [NumFields]uint8) {
	const (
		sq = 1 << SequenceFile
		al = 1 << AlignmentFile
		st = 1 << StructureFile
	)
	m[Seq] = sq | al | st
	m[ID] = sq | al | st
	m[Qual] = sq | al | st
	m[Offset] = al | st
	for f := BPP; f <= Comment; f++ {
		m[f] = st
	}
	for f := Alignment; f <= EValue; f++ {
		m[f] = al
	}
	return
}()

// UsedBy reports whether files of kind k carry field f. Every format of a kind
// must handle all the fields of that kind. User-defined fields are not used by
// any of the standard kinds.
func (f Field) UsedBy(k Kind) bool {
	if !f.Valid() || int(k) >= numKinds {
		return false
	}
	return kindMask[f]&(1<<k) != 0
}

// Fields returns the fields used by files of kind k, in declaration order.
func (k Kind) Fields() []Field {
	var fs []Field
	for f := MinField; f < FieldInvalid; f++ {
		if f.UsedBy(k) {
			fs = append(fs, f)
		}
	}
	return fs
}
