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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package fileio

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/fd"
	"github.com/walteh/xio/pkg/hostfd"
	"github.com/walteh/xio/pkg/rawfile"
)

// unixFile is a host file descriptor.
type unixFile struct {
	fd int
}

// Readv implements Cursor.Readv.
func (u unixFile) Readv(bufs [][]byte) (int, error) {
	return rawfile.Readv(u.fd, bufs)
}

// Writev implements Cursor.Writev.
func (u unixFile) Writev(bufs [][]byte) (int, error) {
	return rawfile.Writev(u.fd, bufs)
}

// Seek implements Cursor.Seek.
func (u unixFile) Seek(offset int64, whence int) (int64, error) {
	return rawfile.Seek(u.fd, offset, whence)
}

// Identity implements Primitives.Identity.
func (u unixFile) Identity() (Identity, error) {
	dev, ino, err := rawfile.Identity(u.fd)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Volume: dev, Index: ino}, nil
}

// Size implements Primitives.Size.
func (u unixFile) Size() (uint64, error) {
	size, err := rawfile.Size(u.fd)
	if err != nil {
		return 0, err
	}
	return uint64(size), nil
}

// Preadv implements Positional.Preadv.
func (u unixFile) Preadv(bufs [][]byte, offset uint64) (int, error) {
	off, err := hostOffset(offset)
	if err != nil {
		return 0, err
	}
	return hostfd.Preadv(u.fd, bufs, off)
}

// Pwritev implements Positional.Pwritev.
func (u unixFile) Pwritev(bufs [][]byte, offset uint64) (int, error) {
	off, err := hostOffset(offset)
	if err != nil {
		return 0, err
	}
	return hostfd.Pwritev(u.fd, bufs, off)
}

// GetFlags implements FlagSetter.GetFlags.
func (u unixFile) GetFlags() (int, error) {
	return rawfile.GetFlags(u.fd)
}

// SetFlags implements FlagSetter.SetFlags.
func (u unixFile) SetFlags(flags int) error {
	return rawfile.SetFlags(u.fd, flags)
}

// AppendFlag implements FlagSetter.AppendFlag.
func (unixFile) AppendFlag() int {
	return unix.O_APPEND
}

// FdFlags implements fdFlagger.FdFlags.
func (u unixFile) FdFlags() (FdFlags, error) {
	flags, err := rawfile.GetFlags(u.fd)
	if err != nil {
		return 0, err
	}
	return fromHost(hostFlags, flags), nil
}

// SetFdFlags implements fdFlagger.SetFdFlags.
func (u unixFile) SetFdFlags(f FdFlags) error {
	flags, err := retryEINTR(u.GetFlags)
	if err != nil {
		return err
	}
	return rawfile.SetFlags(u.fd, toHost(hostFlags, flags, f))
}

// unixDup is a reopened descriptor owned by the engine.
type unixDup struct {
	unixFile
}

// Close implements Duplicate.Close.
func (d unixDup) Close() error {
	return unix.Close(d.fd)
}

// openFlags returns the open(2) flags for a duplicate opened with mode.
func openFlags(mode Mode) int {
	flags := unix.O_NOCTTY | fd.O_LARGEFILE
	switch mode {
	case ModeWrite:
		flags |= unix.O_WRONLY
	case ModeAppend:
		flags |= unix.O_WRONLY | unix.O_APPEND
	default:
		flags |= unix.O_RDONLY
	}
	return flags
}

// reopen opens path as a duplicate.
func reopen(path string, mode Mode) (Duplicate, error) {
	dupfd, err := rawfile.Open(path, openFlags(mode))
	if err != nil {
		return nil, err
	}
	return unixDup{unixFile{fd: dupfd}}, nil
}
