//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package hostfd

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/iovec"
)

// Vectored reports whether Preadv and Pwritev issue a single scatter/gather
// syscall.
//
// x/sys/unix has no preadv/pwritev for these systems, so both operate on the
// first non-empty buffer only. Callers that need every buffer transferred
// loop, which they must do anyway since short transfers are allowed.
const Vectored = false

// Preadv reads from fd at offset into the first non-empty buffer of bufs.
func Preadv(fd int, bufs [][]byte, offset int64) (int, error) {
	b := iovec.FirstNonEmpty(bufs)
	if b == nil {
		return 0, nil
	}
	return unix.Pread(fd, b, offset)
}

// Pwritev writes the first non-empty buffer of bufs into fd at offset.
func Pwritev(fd int, bufs [][]byte, offset int64) (int, error) {
	b := iovec.FirstNonEmpty(bufs)
	if b == nil {
		return 0, nil
	}
	return unix.Pwrite(fd, b, offset)
}

// PwritevAppend always fails with ENOSYS: there is no per-call append
// primitive here.
func PwritevAppend(fd int, bufs [][]byte) (int, error) {
	return 0, unix.ENOSYS
}
