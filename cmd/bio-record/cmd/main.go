// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdFields() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "fields",
		Short: "List the record fields and the file kinds that use them",
	}
	kind := cmd.Flags.String("kind", "", `If set, list only the fields of this file kind.
One of "sequence", "alignment" or "structure".`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("fields takes no arguments, but got %v", argv)
		}
		return printFields(env.Stdout, *kind)
	})
	return cmd
}

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Print the fields of each read of a SAM or BAM file as TSV",
		ArgsName: "path",
	}
	opts := viewOpts{}
	cmd.Flags.StringVar(&opts.fields, "fields", "", `Comma-separated list of fields to print, in order.
For example, "id,ref_id,ref_offset,cigar". By default all alignment fields are printed.`)
	cmd.Flags.StringVar(&opts.out, "out", "", "Output path. By default the TSV is written to stdout")
	cmd.Flags.BoolVar(&opts.bgzip, "bgzip", false, "Compress the output in BGZF format")
	cmd.Flags.BoolVar(&opts.header, "header", true, "Print a header line with the field names")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("view takes one pathname argument, but got %v", argv)
		}
		return view(vcontext.Background(), argv[0], opts, env.Stdout)
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute per-field checksums of a SAM or BAM file.
The checksum is a JSON string with one order-independent hash sum per field`,
		ArgsName: "path",
	}
	opts := checksumOpts{}
	cmd.Flags.StringVar(&opts.fields, "fields", "", "Comma-separated list of fields to checksum. By default all alignment fields are used")
	cmd.Flags.StringVar(&opts.hash, "hash", "seahash", `Hash function. One of "seahash", "farm" or "highway"`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes a path, but found %v", argv)
		}
		return checksum(vcontext.Background(), argv[0], opts, env.Stdout)
	})
	return cmd
}

// Run is the entry point of bio-record.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-record",
			Short:    "Tools for inspecting sequence files as field records",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdFields(),
				newCmdView(),
				newCmdChecksum(),
			},
		})
}
