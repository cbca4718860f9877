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

// Package rawfile contains single-syscall wrappers for cursor-based I/O and
// descriptor state on host file descriptors.
//
// Every function issues at most one syscall that can block and returns its
// error unchanged, including EINTR. Retrying is the caller's decision.
package rawfile

import (
	"golang.org/x/sys/unix"
)

// MaxReadWriteIov is the maximum number of iovec structures that can be
// passed to readv/writev/preadv/pwritev calls.
const MaxReadWriteIov = 1024 // UIO_MAXIOV

// Seek repositions the file offset of fd.
func Seek(fd int, offset int64, whence int) (int64, error) {
	return unix.Seek(fd, offset, whence)
}

// GetFlags returns the file status flags of fd, as for fcntl(F_GETFL).
func GetFlags(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
}

// SetFlags sets the file status flags of fd, as for fcntl(F_SETFL).
func SetFlags(fd int, flags int) error {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)
	return err
}

// Identity returns the device and inode numbers of the file fd refers to.
func Identity(fd int) (dev uint64, ino uint64, err error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, 0, err
	}
	return uint64(st.Dev), uint64(st.Ino), nil
}

// Size returns the size in bytes of the file fd refers to.
func Size(fd int) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, err
	}
	return st.Size, nil
}

// Open opens path with flags. O_CLOEXEC is always added.
func Open(path string, flags int) (int, error) {
	return unix.Open(path, flags|unix.O_CLOEXEC, 0)
}
