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
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/containerd/log"

	"github.com/walteh/xio/pkg/fileio"
)

// Config holds the settings shared by all commands. It is read from a TOML
// file and overridden by command line flags.
type Config struct {
	// Strategy is "auto" or "reopen".
	Strategy string `toml:"strategy"`

	// DuplicateBy is "auto", "handle" or "path".
	DuplicateBy string `toml:"duplicate_by"`

	DisableAtomicAppend bool `toml:"disable_atomic_append"`

	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`

	// Lock makes appends hold an advisory lock on "<file>.lock".
	Lock bool `toml:"lock"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Strategy:    "auto",
		DuplicateBy: "auto",
		LogLevel:    "info",
	}
}

// LoadConfig reads the TOML file at path on top of the defaults. Unknown keys
// are an error.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing %q: unknown keys %v", path, undecoded)
	}
	return conf, nil
}

// RegisterFlags registers flags for every field of c, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "positional I/O strategy: auto or reopen.")
	fs.StringVar(&c.DuplicateBy, "duplicate-by", c.DuplicateBy, "how to reopen files: auto, handle or path.")
	fs.BoolVar(&c.DisableAtomicAppend, "disable-atomic-append", c.DisableAtomicAppend, "never use pwritev2(RWF_APPEND).")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: trace, debug, info, warn or error.")
	fs.BoolVar(&c.Lock, "lock", c.Lock, "hold an advisory lock on <file>.lock while appending.")
}

// Override copies into c the fields whose flags were set on fs. flags must
// be the Config that fs was registered with.
func (c *Config) Override(fs *flag.FlagSet, flags *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			c.Strategy = flags.Strategy
		case "duplicate-by":
			c.DuplicateBy = flags.DuplicateBy
		case "disable-atomic-append":
			c.DisableAtomicAppend = flags.DisableAtomicAppend
		case "log-level":
			c.LogLevel = flags.LogLevel
		case "lock":
			c.Lock = flags.Lock
		}
	})
}

// Options converts c to fileio.Options.
func (c *Config) Options() (fileio.Options, error) {
	strategy, err := fileio.ParseStrategy(c.Strategy)
	if err != nil {
		return fileio.Options{}, err
	}
	by, err := fileio.ParseDuplicateBy(c.DuplicateBy)
	if err != nil {
		return fileio.Options{}, err
	}
	return fileio.Options{
		Strategy:            strategy,
		DuplicateBy:         by,
		DisableAtomicAppend: c.DisableAtomicAppend,
		Logger:              log.L.WithField("module", "fileio"),
	}, nil
}

// ApplyLogLevel sets the level of the global logger.
func (c *Config) ApplyLogLevel() error {
	if c.LogLevel == "" {
		return nil
	}
	return log.SetLevel(c.LogLevel)
}
