// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command bio-record inspects SAM and BAM files through the field/record
// model.
//
//	bio-record fields [-kind alignment]
//	bio-record view [-fields id,ref_id,ref_offset,cigar] [-out foo.tsv.gz -bgzip] foo.bam
//	bio-record checksum [-fields seq,qual] [-hash farm] foo.bam
package main

import "github.com/grailbio/bioio/cmd/bio-record/cmd"

func main() {
	cmd.Run()
}
