// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"io"
	"runtime"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioio/encoding/samrecord"
	"github.com/grailbio/bioio/field"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/bioio/seqrecord"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// recordReader is implemented by both sam.Reader and bam.Reader.
type recordReader interface {
	Header() *sam.Header
	Read() (*sam.Record, error)
}

// selectSchema parses a -fields flag value into a subset of the alignment
// schema.
func selectSchema(fields string) (*record.Schema, error) {
	fs, err := field.ParseSet(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "-fields=%q", fields)
	}
	return seqrecord.SelectSchema(field.AlignmentFile, fs)
}

// scanRecords calls fn once for every read in the SAM or BAM file at path.
// Files ending in ".sam" are read as SAM, others as BAM. fn receives the same
// record on every call, overwritten with the current read, so it must not
// retain it.
func scanRecords(ctx context.Context, path string, schema *record.Schema, fn func(r *record.Record) error) (err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.CloseAndReport(ctx, in, &err)

	var reader recordReader
	if strings.HasSuffix(path, ".sam") {
		sr, e := sam.NewReader(in.Reader(ctx))
		if e != nil {
			return errors.Wrapf(e, "%s: failed to open SAM", path)
		}
		reader = sr
	} else {
		br, e := bam.NewReader(in.Reader(ctx), runtime.NumCPU())
		if e != nil {
			return errors.Wrapf(e, "%s: failed to open BAM", path)
		}
		defer func() {
			if e := br.Close(); e != nil && err == nil {
				err = e
			}
		}()
		reader = br
	}

	conv, err := samrecord.NewConverter(schema, reader.Header())
	if err != nil {
		return err
	}
	rec := schema.New()
	n := 0
	for {
		r, e := reader.Read()
		if e == io.EOF {
			break
		}
		if e != nil {
			return errors.Wrapf(e, "%s: read record %d", path, n)
		}
		conv.Fill(rec, r)
		if err = fn(rec); err != nil {
			return err
		}
		n++
	}
	log.Debug.Printf("%s: scanned %d records with schema %v", path, n, schema)
	return nil
}
