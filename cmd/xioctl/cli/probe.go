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
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// Probe implements subcommands.Command for the "probe" command.
type Probe struct {
	stdio
}

// Name implements subcommands.Command.Name.
func (*Probe) Name() string {
	return "probe"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Probe) Synopsis() string {
	return "report which vectored operations are native for a file"
}

// Usage implements subcommands.Command.Usage.
func (*Probe) Usage() string {
	return `probe <file> - print the capabilities and status flags of <file>.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Probe) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (p *Probe) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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

	flags := "unsupported"
	if ff, err := file.Flags(); err == nil {
		flags = ff.String()
	}
	out := p.out()
	fmt.Fprintf(out, "strategy:          %s\n", conf.Strategy)
	fmt.Fprintf(out, "read_vectored_at:  %t\n", file.IsReadVectoredAt())
	fmt.Fprintf(out, "write_vectored_at: %t\n", file.IsWriteVectoredAt())
	fmt.Fprintf(out, "append_vectored:   %t\n", file.IsAppendVectored())
	fmt.Fprintf(out, "flags:             %s\n", flags)
	return subcommands.ExitSuccess
}
