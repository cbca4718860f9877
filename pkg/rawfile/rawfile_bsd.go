//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package rawfile

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/xio/pkg/iovec"
)

// VectoredCursor reports whether Readv and Writev issue a single
// scatter/gather syscall. x/sys/unix exposes no readv/writev here, so Readv
// fills only the first non-empty buffer.
const VectoredCursor = false

// Readv reads from fd at its current offset into the first non-empty buffer
// of bufs.
func Readv(fd int, bufs [][]byte) (int, error) {
	b := iovec.FirstNonEmpty(bufs)
	if b == nil {
		return 0, nil
	}
	return unix.Read(fd, b)
}

// Writev writes bufs to fd at its current offset.
//
// The buffers are coalesced and issued as a single write(2), so that in
// append mode they land contiguously at the end of the file.
func Writev(fd int, bufs [][]byte) (int, error) {
	bufs = iovec.SkipEmpty(bufs)
	switch len(bufs) {
	case 0:
		return 0, nil
	case 1:
		return unix.Write(fd, bufs[0])
	}

	// Copy all the vectors into one buffer and perform a single write.
	buf := make([]byte, 0, iovec.NumBytes(bufs))
	for _, b := range bufs {
		buf = append(buf, b...)
	}
	return unix.Write(fd, buf)
}
