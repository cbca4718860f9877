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
	"time"

	"github.com/containerd/log"
	"github.com/gofrs/flock"
	"github.com/google/subcommands"
)

// lockRetryDelay is how long Append waits between attempts to take the
// advisory lock.
const lockRetryDelay = 10 * time.Millisecond

// Append implements subcommands.Command for the "append" command.
type Append struct {
	stdio
	create bool
}

// Name implements subcommands.Command.Name.
func (*Append) Name() string {
	return "append"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Append) Synopsis() string {
	return "append stdin to a file"
}

// Usage implements subcommands.Command.Usage.
func (*Append) Usage() string {
	return `append [flags] <file> - write all of stdin at the end of <file>.

With -lock, an advisory lock on <file>.lock is held for the duration of the
append, for cooperating writers on hosts without atomic append.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (a *Append) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&a.create, "create", false, "create the file if it does not exist.")
}

// Execute implements subcommands.Command.Execute.
func (a *Append) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	conf := configFrom(args)
	data, err := io.ReadAll(a.in())
	if err != nil {
		return failuref(ctx, "reading input: %v", err)
	}
	flags := os.O_WRONLY
	if a.create {
		flags |= os.O_CREATE
	}
	file, osf, err := openFile(conf, path, flags)
	if err != nil {
		return failuref(ctx, "opening %q: %v", path, err)
	}
	defer osf.Close()

	if conf.Lock {
		lock := flock.New(path + ".lock")
		if _, err := lock.TryLockContext(ctx, lockRetryDelay); err != nil {
			return failuref(ctx, "locking %q: %v", lock.Path(), err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.G(ctx).WithError(err).Warnf("Unlocking %q", lock.Path())
			}
		}()
	}

	if err := file.AppendAll(data); err != nil {
		return failuref(ctx, "appending to %q: %v", path, err)
	}
	return subcommands.ExitSuccess
}
