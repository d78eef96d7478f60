// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"math"

	"blainsmith.com/go/seahash"
	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioio/record"
	"github.com/grailbio/bioio/seqrecord"
	"github.com/grailbio/hts/sam"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

type checksumOpts struct {
	// fields is the comma-separated list of fields to checksum. Empty means all.
	fields string
	// hash is one of "seahash", "farm" or "highway".
	hash string
}

// fileChecksum is the checksum of a file.
type fileChecksum struct {
	// NRecs is the number of records read.
	NRecs int64
	// Sums maps a field name to the sum of the hashes of its values. The sum
	// does not depend on the order of the records.
	Sums map[string]uint64
}

// highwayKey is the fixed key of the highway hash.
var highwayKey [32]byte

func newHash(name string) (hash.Hash64, error) {
	switch name {
	case "", "seahash":
		return seahash.New(), nil
	case "farm":
		return &farmHash{}, nil
	case "highway":
		return highwayhash.New64(highwayKey[:])
	}
	return nil, errors.Errorf("unknown hash function %q", name)
}

// farmHash adapts farm.Hash64 to hash.Hash64. It buffers the input.
type farmHash struct {
	buf []byte
}

func (h *farmHash) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *farmHash) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, h.Sum64())
}

func (h *farmHash) Sum64() uint64  { return farm.Hash64(h.buf) }
func (h *farmHash) Reset()         { h.buf = h.buf[:0] }
func (h *farmHash) Size() int      { return 8 }
func (h *farmHash) BlockSize() int { return 1 }

// appendValue appends a binary encoding of an element to buf.
func appendValue(buf []byte, v any) []byte {
	switch v := v.(type) {
	case seqrecord.Sequence:
		return append(buf, v...)
	case seqrecord.Quality:
		return append(buf, v...)
	case string:
		return append(buf, v...)
	case int:
		return binary.LittleEndian.AppendUint64(buf, uint64(v))
	case byte:
		return append(buf, v)
	case sam.Flags:
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	case seqrecord.Mate:
		buf = append(buf, v.Ref...)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.Pos))
		return binary.LittleEndian.AppendUint64(buf, uint64(v.TempLen))
	case seqrecord.Cigar:
		for _, op := range v {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(op))
		}
		return buf
	case seqrecord.Tags:
		for _, aux := range v {
			buf = append(buf, aux...)
		}
		return buf
	case float64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	case *sam.Header:
		// The header is shared by all records of a file.
		return buf
	}
	return append(buf, fmt.Sprint(v)...)
}

func computeChecksum(ctx context.Context, path string, opts checksumOpts) (fileChecksum, error) {
	csum := fileChecksum{Sums: map[string]uint64{}}
	schema, err := selectSchema(opts.fields)
	if err != nil {
		return csum, err
	}
	h, err := newHash(opts.hash)
	if err != nil {
		return csum, err
	}
	sums := make([]uint64, schema.Len())
	var buf []byte
	err = scanRecords(ctx, path, schema, func(r *record.Record) error {
		csum.NRecs++
		for i := range sums {
			buf = appendValue(buf[:0], r.At(i))
			h.Reset()
			h.Write(buf)
			sums[i] += h.Sum64()
		}
		return nil
	})
	if err != nil {
		return csum, err
	}
	for i, sum := range sums {
		csum.Sums[schema.Fields().At(i).String()] = sum
	}
	return csum, nil
}

func checksum(ctx context.Context, path string, opts checksumOpts, stdout io.Writer) error {
	csum, err := computeChecksum(ctx, path, opts)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprintln(stdout, string(js))
	return err
}
