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
	"os"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/fd"
	"github.com/walteh/xio/pkg/hostfd"
)

var hostFlags = []hostFlag{
	{FdAppend, unix.O_APPEND},
	{FdDsync, unix.O_DSYNC},
	{FdNonblock, unix.O_NONBLOCK},
	{FdRsync, unix.O_RSYNC},
	{FdSync, unix.O_SYNC},
}

var fadvise = map[Advice]int{
	AdviceNormal:     unix.FADV_NORMAL,
	AdviceSequential: unix.FADV_SEQUENTIAL,
	AdviceRandom:     unix.FADV_RANDOM,
	AdviceWillNeed:   unix.FADV_WILLNEED,
	AdviceDontNeed:   unix.FADV_DONTNEED,
	AdviceNoReuse:    unix.FADV_NOREUSE,
}

// linuxFile adds pwritev2(RWF_APPEND), reopening through /proc and the
// fadvise/fallocate hints.
type linuxFile struct {
	unixFile
}

func newPlatform(h *fd.FD, _ *Options) (Primitives, Capabilities, error) {
	return linuxFile{unixFile{fd: h.FD()}}, Capabilities{
		ReadVectoredAt:  true,
		WriteVectoredAt: true,
		AppendVectored:  true,
	}, nil
}

// PwritevAppend implements AtomicAppender.PwritevAppend.
func (l linuxFile) PwritevAppend(bufs [][]byte) (int, error) {
	return hostfd.PwritevAppend(l.fd, bufs)
}

func (l linuxFile) procPath() string {
	return "/proc/self/fd/" + strconv.Itoa(l.fd)
}

// Duplicate implements Duplicator.Duplicate.
//
// Opening /proc/self/fd/N opens the file the descriptor refers to even if it
// has been renamed or unlinked, so no identity check is needed. By path, the
// magic link is read instead and its target opened like any other path.
func (l linuxFile) Duplicate(mode Mode, by DuplicateBy) (Duplicate, bool, error) {
	if by != DuplicateByPath {
		dup, err := reopen(l.procPath(), mode)
		return dup, false, err
	}
	path, err := os.Readlink(l.procPath())
	if err != nil {
		return nil, false, err
	}
	if testHookBeforeReopen != nil {
		testHookBeforeReopen(path)
	}
	dup, err := reopen(path, mode)
	return dup, true, err
}

// Advise implements adviser.Advise.
func (l linuxFile) Advise(offset, length uint64, advice Advice) error {
	off, err := hostOffset(offset)
	if err != nil {
		return err
	}
	n, err := hostOffset(length)
	if err != nil {
		return err
	}
	return unix.Fadvise(l.fd, off, n, fadvise[advice])
}

// Allocate implements allocator.Allocate.
func (l linuxFile) Allocate(offset, length uint64) error {
	off, err := hostOffset(offset)
	if err != nil {
		return err
	}
	n, err := hostOffset(length)
	if err != nil {
		return err
	}
	if off+n < off {
		return ErrInvalidOffset
	}
	return unix.Fallocate(l.fd, 0, off, n)
}
