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
	"io"
	"math"
	"os"
	"sync/atomic"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/walteh/xio/pkg/fd"
)

// File performs extended I/O on a host handle.
//
// A File does not serialize its callers. Positional operations on distinct
// ranges may run concurrently; appends that fall back to toggling the
// append flag, and all cursor-based operations, must not race with other
// users of the same open file description.
type File struct {
	fd   *fd.FD
	p    Primitives
	caps Capabilities
	opts Options
	log  *logrus.Entry

	// noAtomicAppend is set once the host reported that atomic append is
	// unavailable.
	noAtomicAppend atomic.Bool
}

// New returns a File performing I/O on h. The File closes h on Close only if
// h is owned.
func New(h *fd.FD, opts Options) (*File, error) {
	p, caps, err := newPlatform(h, &opts)
	if err != nil {
		return nil, err
	}
	return newFile(h, p, caps, opts), nil
}

// Open returns a File borrowing f's handle. f must stay open while the File
// is used.
func Open(f *os.File, opts Options) (*File, error) {
	h, err := fd.FromFile(f)
	if err != nil {
		return nil, err
	}
	return New(h, opts)
}

// newFile returns a File over arbitrary primitives.
func newFile(h *fd.FD, p Primitives, caps Capabilities, opts Options) *File {
	return &File{
		fd:   h,
		p:    p,
		caps: caps,
		opts: opts,
		log:  opts.logger(),
	}
}

// FD returns the handle of f.
func (f *File) FD() *fd.FD {
	return f.fd
}

// Close closes the handle if f owns it.
func (f *File) Close() error {
	if f.fd == nil {
		return nil
	}
	return f.fd.Close()
}

// Capabilities reports which vectored operations transfer all buffers at
// once.
func (f *File) Capabilities() Capabilities {
	return f.caps
}

// IsReadVectoredAt reports whether ReadVectoredAt reads into all buffers in
// one transfer.
func (f *File) IsReadVectoredAt() bool {
	return f.caps.ReadVectoredAt
}

// IsWriteVectoredAt reports whether WriteVectoredAt writes all buffers in one
// transfer.
func (f *File) IsWriteVectoredAt() bool {
	return f.caps.WriteVectoredAt
}

// IsAppendVectored reports whether AppendVectored writes all buffers in one
// transfer.
func (f *File) IsAppendVectored() bool {
	return f.caps.AppendVectored
}

// ReadAt reads up to len(b) bytes at off. It returns 0 and a nil error at
// end of file. The file offset is unchanged.
func (f *File) ReadAt(b []byte, off uint64) (int, error) {
	return f.ReadVectoredAt([][]byte{b}, off)
}

// ReadVectoredAt is ReadAt scattering into bufs.
func (f *File) ReadVectoredAt(bufs [][]byte, off uint64) (n int, err error) {
	err = f.at(inbound, func(do attempt) error {
		var oerr error
		n, oerr = once(do, bufs, off)
		return oerr
	})
	return n, err
}

// ReadExactAt fills b from off. Reaching end of file first fails with
// io.ErrUnexpectedEOF.
func (f *File) ReadExactAt(b []byte, off uint64) error {
	return f.ReadExactVectoredAt([][]byte{b}, off)
}

// ReadExactVectoredAt fills every buffer of bufs, in order, from off.
func (f *File) ReadExactVectoredAt(bufs [][]byte, off uint64) error {
	return f.at(inbound, func(do attempt) error {
		return drive(do, progress{bufs: bufs, off: off, dir: inbound, positional: true})
	})
}

// WriteAt writes up to len(b) bytes at off. The file offset is unchanged.
func (f *File) WriteAt(b []byte, off uint64) (int, error) {
	return f.WriteVectoredAt([][]byte{b}, off)
}

// WriteVectoredAt is WriteAt gathering from bufs.
func (f *File) WriteVectoredAt(bufs [][]byte, off uint64) (n int, err error) {
	err = f.at(outbound, func(do attempt) error {
		var oerr error
		n, oerr = once(do, bufs, off)
		return oerr
	})
	return n, err
}

// WriteAllAt writes all of b at off. A transfer that makes no progress fails
// with io.ErrShortWrite.
func (f *File) WriteAllAt(b []byte, off uint64) error {
	return f.WriteAllVectoredAt([][]byte{b}, off)
}

// WriteAllVectoredAt writes every buffer of bufs, in order, from off.
func (f *File) WriteAllVectoredAt(bufs [][]byte, off uint64) error {
	return f.at(outbound, func(do attempt) error {
		return drive(do, progress{bufs: bufs, off: off, dir: outbound, positional: true})
	})
}

// Append writes up to len(b) bytes at the end of the file. The file offset
// is unchanged.
func (f *File) Append(b []byte) (int, error) {
	return f.AppendVectored([][]byte{b})
}

// AppendVectored is Append gathering from bufs.
func (f *File) AppendVectored(bufs [][]byte) (n int, err error) {
	err = f.appending(func(do attempt) error {
		var oerr error
		n, oerr = once(do, bufs, 0)
		return oerr
	})
	return n, err
}

// AppendAll appends all of b.
func (f *File) AppendAll(b []byte) error {
	return f.AppendAllVectored([][]byte{b})
}

// AppendAllVectored appends every buffer of bufs, in order.
func (f *File) AppendAllVectored(bufs [][]byte) error {
	return f.appending(func(do attempt) error {
		return drive(do, progress{bufs: bufs, dir: outbound})
	})
}

// ReadVectored reads into bufs at the file offset and advances it.
func (f *File) ReadVectored(bufs [][]byte) (int, error) {
	return once(cursorAttempt(f.p, inbound), bufs, 0)
}

// ReadExactVectored fills every buffer of bufs from the file offset.
func (f *File) ReadExactVectored(bufs [][]byte) error {
	return drive(cursorAttempt(f.p, inbound), progress{bufs: bufs, dir: inbound})
}

// WriteVectored writes bufs at the file offset and advances it.
func (f *File) WriteVectored(bufs [][]byte) (int, error) {
	return once(cursorAttempt(f.p, outbound), bufs, 0)
}

// WriteAllVectored writes every buffer of bufs at the file offset.
func (f *File) WriteAllVectored(bufs [][]byte) error {
	return drive(cursorAttempt(f.p, outbound), progress{bufs: bufs, dir: outbound})
}

// Seek repositions the file offset, as for io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	off, err := retryEINTR(func() (int64, error) {
		return f.p.Seek(offset, whence)
	})
	return off, surface(err)
}

// StreamPosition returns the file offset.
func (f *File) StreamPosition() (uint64, error) {
	off, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return uint64(off), nil
}

// ReadAllAt reads from off to the end of the file.
func (f *File) ReadAllAt(off uint64) ([]byte, error) {
	var buf []byte
	if size, err := retryEINTR(f.p.Size); err == nil && size > off && size-off < math.MaxInt32 {
		// One more byte lets the final zero-length read happen without
		// growing.
		buf = make([]byte, 0, int(size-off)+1)
	}
	err := f.at(inbound, func(do attempt) error {
		for {
			if len(buf) == cap(buf) {
				buf = append(buf, 0)[:len(buf)]
			}
			n, err := once(do, [][]byte{buf[len(buf):cap(buf)]}, off)
			if err != nil {
				return err
			}
			if n == 0 {
				return nil
			}
			buf = buf[:len(buf)+n]
			next := off + uint64(n)
			if next < off {
				return ErrOffsetOverflow
			}
			off = next
		}
	})
	return buf, err
}

// ReadStringAt is ReadAllAt for text. Content that is not valid UTF-8 fails
// with ErrInvalidUTF8.
func (f *File) ReadStringAt(off uint64) (string, error) {
	b, err := f.ReadAllAt(off)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// Flags returns the status flags of the handle.
func (f *File) Flags() (FdFlags, error) {
	ff, ok := f.p.(fdFlagger)
	if !ok {
		return 0, ErrUnsupported
	}
	flags, err := retryEINTR(ff.FdFlags)
	return flags, surface(err)
}

// SetFlags sets the status flags of the handle. Only FdAppend and
// FdNonblock can be changed; asking for any other flag fails with
// ErrUnsupported.
func (f *File) SetFlags(flags FdFlags) error {
	if flags&^fdFlagsSettable != 0 {
		return ErrUnsupported
	}
	ff, ok := f.p.(fdFlagger)
	if !ok {
		return ErrUnsupported
	}
	return surface(ignoringEINTR(func() error { return ff.SetFdFlags(flags) }))
}

// Advise declares an access pattern for a range of the file. Hosts without
// such hints ignore it.
func (f *File) Advise(off, length uint64, advice Advice) error {
	a, ok := f.p.(adviser)
	if !ok {
		return nil
	}
	return surface(ignoringEINTR(func() error { return a.Advise(off, length, advice) }))
}

// Allocate ensures that disk space is allocated for a range of the file,
// extending it if needed.
func (f *File) Allocate(off, length uint64) error {
	a, ok := f.p.(allocator)
	if !ok {
		return ErrUnsupported
	}
	return surface(ignoringEINTR(func() error { return a.Allocate(off, length) }))
}
