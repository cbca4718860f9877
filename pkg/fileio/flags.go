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
	"strings"
)

// FdFlags are the descriptor status flags a File can report.
type FdFlags uint32

const (
	// FdAppend means every write lands at the end of the file.
	FdAppend FdFlags = 1 << iota

	// FdDsync means writes complete only once data is durable.
	FdDsync

	// FdNonblock means calls fail with EAGAIN instead of blocking.
	FdNonblock

	// FdRsync means reads wait for pending synchronized writes.
	FdRsync

	// FdSync means writes complete only once data and metadata are durable.
	FdSync
)

// fdFlagsSettable are the flags SetFlags can change. The synchronization
// flags can only be chosen at open time.
const fdFlagsSettable = FdAppend | FdNonblock

var fdFlagNames = []struct {
	flag FdFlags
	name string
}{
	{FdAppend, "append"},
	{FdDsync, "dsync"},
	{FdNonblock, "nonblock"},
	{FdRsync, "rsync"},
	{FdSync, "sync"},
}

// String implements fmt.Stringer.String.
func (f FdFlags) String() string {
	var names []string
	for _, fn := range fdFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// hostFlag pairs an FdFlags bit with the host's status flag bits.
type hostFlag struct {
	flag FdFlags
	host int
}

// fromHost converts host status flags. A host flag made of several bits is
// reported only when all of them are set.
func fromHost(table []hostFlag, flags int) FdFlags {
	var f FdFlags
	for _, hf := range table {
		if hf.host != 0 && flags&hf.host == hf.host {
			f |= hf.flag
		}
	}
	return f
}

// toHost replaces the settable bits of current with those of f.
func toHost(table []hostFlag, current int, f FdFlags) int {
	for _, hf := range table {
		if hf.flag&fdFlagsSettable == 0 {
			continue
		}
		if f&hf.flag != 0 {
			current |= hf.host
		} else {
			current &^= hf.host
		}
	}
	return current
}

// Advice is an access pattern hint for Advise.
type Advice uint8

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	AdviceWillNeed
	AdviceDontNeed
	AdviceNoReuse
)
