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

// Package cli implements the xioctl command line.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/containerd/log"
	"github.com/google/subcommands"

	"github.com/walteh/xio/pkg/fileio"
)

// Main is the entry point of xioctl.
func Main() {
	var (
		configPath string
		flagConf   = DefaultConfig()
	)
	flag.StringVar(&configPath, "config", "", "path to a TOML configuration file.")
	flagConf.RegisterFlags(flag.CommandLine)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	const ioGroup = "file I/O"
	subcommands.Register(new(Read), ioGroup)
	subcommands.Register(new(Write), ioGroup)
	subcommands.Register(new(Append), ioGroup)
	subcommands.Register(new(Probe), "")

	flag.Parse()

	conf, err := LoadConfig(configPath)
	if err != nil {
		Fatalf("%v", err)
	}
	conf.Override(flag.CommandLine, flagConf)
	if err := conf.ApplyLogLevel(); err != nil {
		Fatalf("%v", err)
	}

	os.Exit(int(subcommands.Execute(context.Background(), conf)))
}

// Fatalf logs to stderr and exits with a failure status.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "xioctl: "+format+"\n", args...)
	os.Exit(128)
}

// failuref logs the error and returns subcommands.ExitFailure.
func failuref(ctx context.Context, format string, args ...any) subcommands.ExitStatus {
	log.G(ctx).Errorf(format, args...)
	return subcommands.ExitFailure
}

// configFrom extracts the Config passed to subcommands.Execute.
func configFrom(args []any) *Config {
	if len(args) > 0 {
		if conf, ok := args[0].(*Config); ok {
			return conf
		}
	}
	return DefaultConfig()
}

// openFile opens path with flag and wraps it in a fileio.File. Closing the
// returned os.File releases both.
func openFile(conf *Config, path string, flag int) (*fileio.File, *os.File, error) {
	opts, err := conf.Options()
	if err != nil {
		return nil, nil, err
	}
	osf, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, nil, err
	}
	f, err := fileio.Open(osf, opts)
	if err != nil {
		osf.Close()
		return nil, nil, err
	}
	return f, osf, nil
}

// stdio is the standard streams of a command, replaceable in tests.
type stdio struct {
	stdin  io.Reader
	stdout io.Writer
}

func (s *stdio) in() io.Reader {
	if s.stdin == nil {
		return os.Stdin
	}
	return s.stdin
}

func (s *stdio) out() io.Writer {
	if s.stdout == nil {
		return os.Stdout
	}
	return s.stdout
}
