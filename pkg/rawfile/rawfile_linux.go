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

//go:build linux

package rawfile

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/iovec"
)

// VectoredCursor reports whether Readv and Writev issue a single
// scatter/gather syscall.
const VectoredCursor = true

// Readv reads from fd at its current offset into bufs with one readv(2).
//
// At most MaxReadWriteIov buffers are used.
func Readv(fd int, bufs [][]byte) (int, error) {
	return unix.Readv(fd, iovec.Truncate(bufs, MaxReadWriteIov))
}

// Writev writes bufs to fd at its current offset with one writev(2).
//
// At most MaxReadWriteIov buffers are used.
func Writev(fd int, bufs [][]byte) (int, error) {
	return unix.Writev(fd, iovec.Truncate(bufs, MaxReadWriteIov))
}
