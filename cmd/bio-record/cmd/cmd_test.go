// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// writeTestBAM writes a BAM file with one mapped and one unmapped read.
func writeTestBAM(t *testing.T, dir string) string {
	chr1, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	assert.NoError(t, err)
	chr2, err := sam.NewReference("chr2", "", "", 2000, nil, nil)
	assert.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	assert.NoError(t, err)

	nm, err := sam.NewAux(sam.NewTag("NM"), 1)
	assert.NoError(t, err)
	r1, err := sam.NewRecord("read1", chr1, chr2, 100, 250, 300, 60,
		[]sam.CigarOp{sam.NewCigarOp(sam.CigarSoftClipped, 2), sam.NewCigarOp(sam.CigarMatch, 6)},
		[]byte("TTACGTAC"), []byte{30, 30, 31, 32, 33, 34, 35, 36}, []sam.Aux{nm})
	assert.NoError(t, err)
	r1.Flags = sam.Paired | sam.Read1
	r2, err := sam.NewRecord("read2", nil, nil, -1, -1, 0, 0, nil, []byte("AC"), []byte{0xff, 0xff}, nil)
	assert.NoError(t, err)
	r2.Flags = sam.Unmapped

	path := filepath.Join(dir, "test.bam")
	out, err := os.Create(path)
	assert.NoError(t, err)
	w, err := bam.NewWriter(out, header, 1)
	assert.NoError(t, err)
	assert.NoError(t, w.Write(r1))
	assert.NoError(t, w.Write(r2))
	assert.NoError(t, w.Close())
	assert.NoError(t, out.Close())
	return path
}

func TestView(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestBAM(t, dir)
	ctx := context.Background()

	var out bytes.Buffer
	err := view(ctx, path, viewOpts{fields: "id,ref_id,ref_offset,cigar,seq,qual,offset", header: true}, &out)
	assert.NoError(t, err)
	expect.EQ(t, `#id	ref_id	ref_offset	cigar	seq	qual	offset
read1	chr1	101	2S6M	TTACGTAC	??@ABCDE	2
read2	*	0	*	AC	*	0
`, out.String())

	out.Reset()
	err = view(ctx, path, viewOpts{fields: "flag,mapq,mate,tags"}, &out)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	expect.EQ(t, 2, len(lines))
	expect.True(t, strings.HasPrefix(lines[0], "65\t60\tchr2:251:300\tNM:"), lines[0])
	// TrimSpace drops the empty tags column of the last line.
	expect.EQ(t, "4\t0\t*:0:0", lines[1])

	err = view(ctx, path, viewOpts{fields: "seq,bpp"}, &out)
	expect.True(t, err != nil)
	err = view(ctx, filepath.Join(dir, "missing.bam"), viewOpts{}, &out)
	expect.True(t, err != nil)
}

func TestViewBGZF(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestBAM(t, dir)
	outPath := filepath.Join(dir, "out.tsv.gz")
	err := view(context.Background(), path, viewOpts{fields: "id,seq", out: outPath, bgzip: true}, nil)
	assert.NoError(t, err)

	in, err := os.Open(outPath)
	assert.NoError(t, err)
	defer in.Close()
	gz, err := gzip.NewReader(in)
	assert.NoError(t, err)
	data, err := ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, "read1\tTTACGTAC\nread2\tAC\n", string(data))
}

func TestChecksum(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestBAM(t, dir)
	ctx := context.Background()

	all, err := computeChecksum(ctx, path, checksumOpts{})
	assert.NoError(t, err)
	expect.EQ(t, int64(2), all.NRecs)
	expect.EQ(t, 12, len(all.Sums))

	for _, h := range []string{"seahash", "farm", "highway"} {
		c0, err := computeChecksum(ctx, path, checksumOpts{fields: "seq,qual", hash: h})
		assert.NoError(t, err)
		c1, err := computeChecksum(ctx, path, checksumOpts{fields: "qual,seq", hash: h})
		assert.NoError(t, err)
		expect.EQ(t, c0, c1, "hash %s", h)
		expect.EQ(t, 2, len(c0.Sums))
		expect.True(t, c0.Sums["seq"] != c0.Sums["qual"], "hash %s", h)
	}
	seahash, err := computeChecksum(ctx, path, checksumOpts{fields: "seq", hash: "seahash"})
	assert.NoError(t, err)
	farm, err := computeChecksum(ctx, path, checksumOpts{fields: "seq", hash: "farm"})
	assert.NoError(t, err)
	expect.True(t, seahash.Sums["seq"] != farm.Sums["seq"])

	_, err = computeChecksum(ctx, path, checksumOpts{hash: "md5"})
	expect.True(t, err != nil)
	_, err = computeChecksum(ctx, path, checksumOpts{fields: "seq,seq"})
	expect.True(t, err != nil)

	var out bytes.Buffer
	assert.NoError(t, checksum(ctx, path, checksumOpts{fields: "id"}, &out))
	var parsed fileChecksum
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	expect.EQ(t, int64(2), parsed.NRecs)
	_, ok := parsed.Sums["id"]
	expect.True(t, ok)
}

func TestPrintFields(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, printFields(&out, ""))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	expect.EQ(t, 34, len(lines))
	expect.EQ(t, "#field\tsequence\talignment\tstructure", lines[0])
	expect.EQ(t, "seq\tseqrecord.Sequence\tseqrecord.Sequence\tseqrecord.Sequence", lines[1])
	expect.EQ(t, "user_defined_9\t-\t-\t-", lines[33])

	out.Reset()
	assert.NoError(t, printFields(&out, "sequence"))
	expect.EQ(t, "#field\tsequence\nseq\tseqrecord.Sequence\nid\tstring\nqual\tseqrecord.Quality\n", out.String())

	out.Reset()
	assert.NoError(t, printFields(&out, "alignment"))
	expect.True(t, strings.Contains(out.String(), "\nbit_score\t+\n"), out.String())
	expect.True(t, strings.Contains(out.String(), "\nflag\tsam.Flags\n"), out.String())

	expect.True(t, printFields(&out, "fasta") != nil)
}
