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

package hostfd

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/iovec"
)

// Vectored reports whether Preadv and Pwritev issue a single scatter/gather
// syscall.
const Vectored = true

// Preadv reads up to iovec.NumBytes(bufs) bytes from fd at offset into bufs.
//
// At most MaxReadWriteIov buffers are used.
func Preadv(fd int, bufs [][]byte, offset int64) (int, error) {
	return unix.Preadv(fd, iovec.Truncate(bufs, MaxReadWriteIov), offset)
}

// Pwritev writes up to iovec.NumBytes(bufs) bytes from bufs into fd at
// offset.
//
// At most MaxReadWriteIov buffers are used.
func Pwritev(fd int, bufs [][]byte, offset int64) (int, error) {
	return unix.Pwritev(fd, iovec.Truncate(bufs, MaxReadWriteIov), offset)
}

// PwritevAppend writes bufs at the end of the file with a single
// pwritev2(RWF_APPEND), which is atomic with respect to other appenders and
// leaves the file offset of fd unchanged.
//
// Kernels older than 4.16 fail with EOPNOTSUPP (unknown flag) or ENOSYS
// (no pwritev2).
func PwritevAppend(fd int, bufs [][]byte) (int, error) {
	iovecs, _ := iovec.Build(iovec.Truncate(bufs, MaxReadWriteIov), make([]unix.Iovec, 0, 2))
	if len(iovecs) == 0 {
		return 0, nil
	}
	// The offset is ignored by RWF_APPEND, but it must not be -1, which
	// would make the kernel update the file offset.
	n, _, e := unix.Syscall6(unix.SYS_PWRITEV2, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), 0 /* pos_l */, 0 /* pos_h */, unix.RWF_APPEND)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}
