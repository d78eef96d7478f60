// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bioio/field"
	"github.com/grailbio/bioio/seqrecord"
)

// printFields writes one TSV row per field. There is one column per file kind,
// holding the element type of the field in that kind's standard schema, "+" if
// the kind uses the field but the standard schema omits it, or "-".
func printFields(w io.Writer, kindName string) error {
	kinds := field.Kinds()
	if kindName != "" {
		k, err := field.ParseKind(kindName)
		if err != nil {
			return err
		}
		kinds = []field.Kind{k}
	}
	tw := tsv.NewWriter(w)
	tw.WriteString("#field")
	for _, k := range kinds {
		tw.WriteString(k.String())
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, f := range field.All() {
		used := false
		for _, k := range kinds {
			used = used || f.UsedBy(k)
		}
		if kindName != "" && !used {
			continue
		}
		tw.WriteString(f.String())
		for _, k := range kinds {
			s := seqrecord.SchemaFor(k)
			switch i := s.IndexOf(f); {
			case i != field.NPos:
				tw.WriteString(s.Type(i).String())
			case f.UsedBy(k):
				tw.WriteString("+")
			default:
				tw.WriteString("-")
			}
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
