// Copyright 2025 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// Read implements subcommands.Command for the "read" command.
type Read struct {
	stdio
	offset uint64
	length int64
}

// Name implements subcommands.Command.Name.
func (*Read) Name() string {
	return "read"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Read) Synopsis() string {
	return "read a file at an offset without moving its file offset"
}

// Usage implements subcommands.Command.Usage.
func (*Read) Usage() string {
	return `read [flags] <file> - copy bytes from <file> to stdout.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Read) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&r.offset, "offset", 0, "offset to read from.")
	f.Int64Var(&r.length, "length", -1, "number of bytes to read; -1 reads to the end of the file.")
}

// Execute implements subcommands.Command.Execute.
func (r *Read) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := configFrom(args)
	file, osf, err := openFile(conf, f.Arg(0), os.O_RDONLY)
	if err != nil {
		return failuref(ctx, "opening %q: %v", f.Arg(0), err)
	}
	defer osf.Close()

	var data []byte
	if r.length < 0 {
		data, err = file.ReadAllAt(r.offset)
	} else {
		data = make([]byte, r.length)
		err = file.ReadExactAt(data, r.offset)
	}
	if err != nil {
		return failuref(ctx, "reading %q at %d: %v", f.Arg(0), r.offset, err)
	}
	if _, err := r.out().Write(data); err != nil {
		return failuref(ctx, "writing output: %v", err)
	}
	return subcommands.ExitSuccess
}
