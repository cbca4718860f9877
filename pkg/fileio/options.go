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

package fileio

import (
	"fmt"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
)

// Strategy selects how positional I/O is carried out.
type Strategy uint8

const (
	// StrategyAuto uses native primitives where the host has them.
	StrategyAuto Strategy = iota

	// StrategyReopen always goes through a duplicate handle, even where a
	// native primitive exists.
	StrategyReopen
)

var strategyNames = map[Strategy]string{
	StrategyAuto:   "auto",
	StrategyReopen: "reopen",
}

// String implements fmt.Stringer.String.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy parses the name of a Strategy. The empty string is
// StrategyAuto.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return StrategyAuto, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// DuplicateBy selects how a duplicate handle is opened.
type DuplicateBy uint8

const (
	// DuplicateAuto prefers reopening the handle itself and falls back to
	// its path.
	DuplicateAuto DuplicateBy = iota

	// DuplicateByHandle reopens the handle itself (/proc/self/fd on Linux).
	// No identity check is needed.
	DuplicateByHandle

	// DuplicateByPath resolves the handle's current path and opens it. The
	// result is checked against the original handle's identity.
	DuplicateByPath
)

var duplicateByNames = map[DuplicateBy]string{
	DuplicateAuto:     "auto",
	DuplicateByHandle: "handle",
	DuplicateByPath:   "path",
}

// String implements fmt.Stringer.String.
func (d DuplicateBy) String() string {
	if name, ok := duplicateByNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DuplicateBy(%d)", uint8(d))
}

// ParseDuplicateBy parses the name of a DuplicateBy. The empty string is
// DuplicateAuto.
func ParseDuplicateBy(name string) (DuplicateBy, error) {
	if name == "" {
		return DuplicateAuto, nil
	}
	for d, n := range duplicateByNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown duplicate mode %q", name)
}

// Options configures a File. The zero value uses native primitives where
// they exist and logs through the containerd logger.
type Options struct {
	Strategy    Strategy
	DuplicateBy DuplicateBy

	// DisableAtomicAppend skips pwritev2(RWF_APPEND) and always toggles the
	// append flag.
	DisableAtomicAppend bool

	// Logger overrides the default logger.
	Logger *logrus.Entry
}

func (o *Options) logger() *logrus.Entry {
	if o.Logger != nil {
		return o.Logger
	}
	return log.L.WithField("module", "fileio")
}
