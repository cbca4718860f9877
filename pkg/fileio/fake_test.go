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
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeAppend is the append status flag of fake handles.
const fakeAppend = 0x400

// memFile is an in-memory file shared by every fake handle opened on it.
type memFile struct {
	mu   sync.Mutex
	data []byte
	id   Identity
}

func newMemFile(index uint64, content string) *memFile {
	return &memFile{data: []byte(content), id: Identity{Volume: 1, Index: index}}
}

func (m *memFile) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data)
}

// faults scripts the behavior of fake handles. It is shared by a handle and
// its duplicates.
type faults struct {
	mu sync.Mutex

	// eintr is the number of EINTRs an operation returns before it runs.
	eintr map[string]int

	// errs fails an operation every time it runs.
	errs map[string]error

	// stall makes a transfer operation return 0 without an error.
	stall map[string]bool

	// maxIO caps the bytes moved by one transfer. Zero means no cap.
	maxIO int

	calls map[string]int
}

func newFaults() *faults {
	return &faults{
		eintr: make(map[string]int),
		errs:  make(map[string]error),
		stall: make(map[string]bool),
		calls: make(map[string]int),
	}
}

// hit records a call of op and returns the error it is scripted to fail
// with.
func (f *faults) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if f.eintr[op] > 0 {
		f.eintr[op]--
		return syscall.EINTR
	}
	return f.errs[op]
}

func (f *faults) stalled(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stall[op]
}

func (f *faults) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// fakeHandle is an open file description of a memFile.
type fakeHandle struct {
	mu     sync.Mutex
	file   *memFile
	pos    int64
	flags  int
	closed bool

	faults *faults

	// vectored makes transfers use every buffer instead of the first
	// non-empty one.
	vectored bool

	// swapped, if set, is the file duplicates open instead of file.
	swapped *memFile

	// byPath is what Duplicate reports.
	byPath bool

	// onSetFlags, if set, runs before SetFlags takes effect.
	onSetFlags func(flags int) error

	dupMu sync.Mutex
	dups  []*fakeHandle
}

// transfer moves bytes between bufs and the file at off.
func (h *fakeHandle) transfer(op string, bufs [][]byte, off int64, dir direction) (int, error) {
	if err := h.faults.hit(op); err != nil {
		return 0, err
	}
	if h.faults.stalled(op) {
		return 0, nil
	}
	if !h.vectored {
		for _, b := range bufs {
			if len(b) > 0 {
				bufs = [][]byte{b}
				break
			}
		}
	}
	limit := h.faults.maxIO
	h.file.mu.Lock()
	defer h.file.mu.Unlock()
	if dir == outbound && h.flags&fakeAppend != 0 {
		off = int64(len(h.file.data))
	}
	n := 0
	for _, b := range bufs {
		if limit > 0 && n+len(b) > limit {
			b = b[:limit-n]
		}
		if dir == inbound {
			if off >= int64(len(h.file.data)) {
				break
			}
			c := copy(b, h.file.data[off:])
			n += c
			off += int64(c)
			if c < len(b) {
				break
			}
		} else {
			if end := off + int64(len(b)); end > int64(len(h.file.data)) {
				h.file.data = append(h.file.data, make([]byte, end-int64(len(h.file.data)))...)
			}
			n += copy(h.file.data[off:], b)
			off += int64(len(b))
		}
		if limit > 0 && n == limit {
			break
		}
	}
	return n, nil
}

func (h *fakeHandle) Readv(bufs [][]byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, err := h.transfer("readv", bufs, h.pos, inbound)
	h.pos += int64(n)
	return n, err
}

func (h *fakeHandle) Writev(bufs [][]byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.flags&fakeAppend != 0 {
		h.file.mu.Lock()
		h.pos = int64(len(h.file.data))
		h.file.mu.Unlock()
	}
	n, err := h.transfer("writev", bufs, h.pos, outbound)
	h.pos += int64(n)
	return n, err
}

func (h *fakeHandle) Seek(offset int64, whence int) (int64, error) {
	if err := h.faults.hit("seek"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += h.pos
	case io.SeekEnd:
		h.file.mu.Lock()
		offset += int64(len(h.file.data))
		h.file.mu.Unlock()
	default:
		return 0, syscall.EINVAL
	}
	if offset < 0 {
		return 0, syscall.EINVAL
	}
	h.pos = offset
	return offset, nil
}

func (h *fakeHandle) Identity() (Identity, error) {
	if err := h.faults.hit("identity"); err != nil {
		return Identity{}, err
	}
	return h.file.id, nil
}

func (h *fakeHandle) Size() (uint64, error) {
	h.file.mu.Lock()
	defer h.file.mu.Unlock()
	return uint64(len(h.file.data)), nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return syscall.EBADF
	}
	h.closed = true
	return nil
}

func (h *fakeHandle) position() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos
}

func (h *fakeHandle) preadv(bufs [][]byte, off uint64) (int, error) {
	o, err := hostOffset(off)
	if err != nil {
		return 0, err
	}
	return h.transfer("preadv", bufs, o, inbound)
}

func (h *fakeHandle) pwritev(bufs [][]byte, off uint64) (int, error) {
	o, err := hostOffset(off)
	if err != nil {
		return 0, err
	}
	if h.flags&fakeAppend != 0 {
		// Like pwrite on Linux, append mode wins over the offset.
		h.file.mu.Lock()
		o = int64(len(h.file.data))
		h.file.mu.Unlock()
	}
	return h.transfer("pwritev", bufs, o, outbound)
}

func (h *fakeHandle) pwritevAppend(bufs [][]byte) (int, error) {
	h.file.mu.Lock()
	end := int64(len(h.file.data))
	h.file.mu.Unlock()
	return h.transfer("pwritev2", bufs, end, outbound)
}

func (h *fakeHandle) getFlags() (int, error) {
	if err := h.faults.hit("getflags"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flags, nil
}

func (h *fakeHandle) setFlags(flags int) error {
	if err := h.faults.hit("setflags"); err != nil {
		return err
	}
	if h.onSetFlags != nil {
		if err := h.onSetFlags(flags); err != nil {
			return err
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flags = flags
	return nil
}

func (h *fakeHandle) duplicate(mode Mode, _ DuplicateBy) (Duplicate, bool, error) {
	if err := h.faults.hit("dup"); err != nil {
		return nil, false, err
	}
	target := h.file
	if h.swapped != nil {
		target = h.swapped
	}
	d := &fakeHandle{file: target, faults: h.faults, vectored: h.vectored}
	if mode == ModeAppend {
		d.flags = fakeAppend
	}
	h.dupMu.Lock()
	h.dups = append(h.dups, d)
	h.dupMu.Unlock()
	return d, h.byPath, nil
}

// openDups returns the duplicates that have not been closed.
func (h *fakeHandle) openDups() int {
	h.dupMu.Lock()
	defer h.dupMu.Unlock()
	open := 0
	for _, d := range h.dups {
		d.mu.Lock()
		if !d.closed {
			open++
		}
		d.mu.Unlock()
	}
	return open
}

func (h *fakeHandle) dupCount() int {
	h.dupMu.Lock()
	defer h.dupMu.Unlock()
	return len(h.dups)
}

// nativeHost has every primitive, like Linux.
type nativeHost struct{ *fakeHandle }

func (n nativeHost) Preadv(bufs [][]byte, off uint64) (int, error) { return n.preadv(bufs, off) }
func (n nativeHost) Pwritev(bufs [][]byte, off uint64) (int, error) { return n.pwritev(bufs, off) }
func (n nativeHost) PwritevAppend(bufs [][]byte) (int, error) { return n.pwritevAppend(bufs) }
func (n nativeHost) GetFlags() (int, error) { return n.getFlags() }
func (n nativeHost) SetFlags(flags int) error { return n.setFlags(flags) }
func (nativeHost) AppendFlag() int { return fakeAppend }
func (n nativeHost) Duplicate(mode Mode, by DuplicateBy) (Duplicate, bool, error) {
	return n.duplicate(mode, by)
}

// toggleHost has positional I/O and flags but no atomic append, like the
// BSDs.
type toggleHost struct{ *fakeHandle }

func (t toggleHost) Preadv(bufs [][]byte, off uint64) (int, error) { return t.preadv(bufs, off) }
func (t toggleHost) Pwritev(bufs [][]byte, off uint64) (int, error) { return t.pwritev(bufs, off) }
func (t toggleHost) GetFlags() (int, error) { return t.getFlags() }
func (t toggleHost) SetFlags(flags int) error { return t.setFlags(flags) }
func (toggleHost) AppendFlag() int { return fakeAppend }

// reopenHost only has cursor I/O and duplication, like Windows.
type reopenHost struct{ *fakeHandle }

func (r reopenHost) Duplicate(mode Mode, by DuplicateBy) (Duplicate, bool, error) {
	return r.duplicate(mode, by)
}

type hostKind int

const (
	native hostKind = iota
	toggle
	reopenOnly
)

func (k hostKind) String() string {
	return [...]string{"native", "toggle", "reopen"}[k]
}

var hostKinds = []hostKind{native, toggle, reopenOnly}

// newFakeFile returns a File over a fake host of kind holding content.
func newFakeFile(kind hostKind, content string, opts Options) (*File, *fakeHandle) {
	h := &fakeHandle{
		file:     newMemFile(1, content),
		faults:   newFaults(),
		vectored: true,
		byPath:   kind == reopenOnly,
	}
	var p Primitives
	switch kind {
	case native:
		p = nativeHost{h}
	case toggle:
		p = toggleHost{h}
	default:
		p = reopenHost{h}
	}
	if opts.Logger == nil {
		logger, _ := test.NewNullLogger()
		opts.Logger = logrus.NewEntry(logger)
	}
	return newFile(nil, p, Capabilities{true, true, true}, opts), h
}

// capturingLogger returns an entry whose records are kept by the hook.
func capturingLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}
