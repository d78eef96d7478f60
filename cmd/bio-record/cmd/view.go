// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/bioio/seqrecord"
	"github.com/grailbio/hts/bgzf"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

type viewOpts struct {
	// fields is the comma-separated list of fields to print. Empty means all.
	fields string
	// out is the output path. Empty means stdout.
	out string
	// bgzip causes the output to be BGZF compressed.
	bgzip bool
	// header causes a "#field..." line to be printed first.
	header bool
}

// formatValue renders an element in SAM text conventions: "*" for absent
// values, and 1-based positions.
func formatValue(f fieldValue) string {
	switch v := f.v.(type) {
	case seqrecord.Sequence:
		if len(v) == 0 {
			return "*"
		}
		return v.String()
	case seqrecord.Quality:
		if len(v) == 0 {
			return "*"
		}
		return v.String()
	case seqrecord.Cigar:
		if len(v) == 0 {
			return "*"
		}
		return v.String()
	case seqrecord.Tags:
		parts := make([]string, len(v))
		for i, aux := range v {
			parts[i] = aux.String()
		}
		return strings.Join(parts, ",")
	case seqrecord.Mate:
		ref := v.Ref
		if ref == "" {
			ref = "*"
		}
		return fmt.Sprintf("%s:%d:%d", ref, v.Pos+1, v.TempLen)
	case string:
		if v == "" {
			return "*"
		}
		return v
	case int:
		if f.position {
			v++
		}
		return strconv.Itoa(v)
	case sam.Flags:
		return strconv.Itoa(int(v))
	case byte:
		return strconv.Itoa(int(v))
	case *sam.Header:
		if v == nil {
			return "*"
		}
		return strconv.Itoa(len(v.Refs())) + " refs"
	}
	return fmt.Sprint(f.v)
}

// fieldValue is one element of a record, with whether it is a 0-based
// coordinate that is printed 1-based.
type fieldValue struct {
	v        any
	position bool
}

func view(ctx context.Context, path string, opts viewOpts, stdout io.Writer) (err error) {
	schema, err := selectSchema(opts.fields)
	if err != nil {
		return err
	}
	refOffset := schema.IndexOf(seqrecord.RefOffsetKey.Field())

	w := stdout
	if opts.out != "" {
		out, e := file.Create(ctx, opts.out)
		if e != nil {
			return errors.Wrapf(e, "create %s", opts.out)
		}
		defer file.CloseAndReport(ctx, out, &err)
		w = out.Writer(ctx)
	}
	if opts.bgzip {
		bw := bgzf.NewWriter(w, runtime.NumCPU())
		defer func() {
			if e := bw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = bw
	}

	tw := tsv.NewWriter(w)
	if opts.header {
		for i := 0; i < schema.Len(); i++ {
			name := schema.Fields().At(i).String()
			if i == 0 {
				name = "#" + name
			}
			tw.WriteString(name)
		}
		if err = tw.EndLine(); err != nil {
			return err
		}
	}
	n := 0
	err = scanRecords(ctx, path, schema, func(r *record.Record) error {
		for i := 0; i < r.Len(); i++ {
			tw.WriteString(formatValue(fieldValue{v: r.At(i), position: i == refOffset}))
		}
		n++
		return tw.EndLine()
	})
	if err != nil {
		return err
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	if opts.out != "" {
		log.Printf("view: wrote %d records to %s", n, opts.out)
	}
	return nil
}
