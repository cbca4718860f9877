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
	"io"
	"os"

	"github.com/google/subcommands"
)

// Write implements subcommands.Command for the "write" command.
type Write struct {
	stdio
	offset uint64
	create bool
}

// Name implements subcommands.Command.Name.
func (*Write) Name() string {
	return "write"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Write) Synopsis() string {
	return "write stdin into a file at an offset"
}

// Usage implements subcommands.Command.Usage.
func (*Write) Usage() string {
	return `write [flags] <file> - write all of stdin into <file> at -offset.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (w *Write) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&w.offset, "offset", 0, "offset to write at.")
	f.BoolVar(&w.create, "create", false, "create the file if it does not exist.")
}

// Execute implements subcommands.Command.Execute.
func (w *Write) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	data, err := io.ReadAll(w.in())
	if err != nil {
		return failuref(ctx, "reading input: %v", err)
	}
	flags := os.O_WRONLY
	if w.create {
		flags |= os.O_CREATE
	}
	file, osf, err := openFile(configFrom(args), f.Arg(0), flags)
	if err != nil {
		return failuref(ctx, "opening %q: %v", f.Arg(0), err)
	}
	defer osf.Close()

	if err := file.WriteAllAt(data, w.offset); err != nil {
		return failuref(ctx, "writing %q at %d: %v", f.Arg(0), w.offset, err)
	}
	return subcommands.ExitSuccess
}
