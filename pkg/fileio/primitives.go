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

import "fmt"

// Mode is the access mode a duplicate handle is opened with.
type Mode uint8

const (
	// ModeRead opens the duplicate for reading.
	ModeRead Mode = iota

	// ModeWrite opens the duplicate for writing at explicit offsets.
	ModeWrite

	// ModeAppend opens the duplicate so that every write lands at the end
	// of the file.
	ModeAppend
)

// String implements fmt.Stringer.String.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Identity identifies the underlying file object of a handle: device and
// inode on unix, volume serial number and file index on Windows. Two handles
// refer to the same file iff their identities are equal.
type Identity struct {
	Volume uint64
	Index  uint64
}

// String implements fmt.Stringer.String.
func (id Identity) String() string {
	return fmt.Sprintf("%d:%d", id.Volume, id.Index)
}

// Cursor is cursor-based I/O on a handle. Each call is a single attempt and
// may transfer fewer bytes than requested. Errors, including EINTR, are
// returned unchanged.
type Cursor interface {
	// Readv reads into bufs at the file offset and advances it.
	Readv(bufs [][]byte) (int, error)

	// Writev writes bufs at the file offset and advances it.
	Writev(bufs [][]byte) (int, error)

	// Seek repositions the file offset, as for io.Seeker.
	Seek(offset int64, whence int) (int64, error)
}

// Primitives is what every host provides for a handle.
//
// A host may additionally implement Positional, AtomicAppender, FlagSetter
// and Duplicator; File picks the best combination available.
type Primitives interface {
	Cursor

	// Identity returns the identity of the file the handle refers to.
	Identity() (Identity, error)

	// Size returns the current size of the file.
	Size() (uint64, error)
}

// Positional is native offset-addressed I/O that leaves the file offset
// unchanged.
type Positional interface {
	Preadv(bufs [][]byte, offset uint64) (int, error)
	Pwritev(bufs [][]byte, offset uint64) (int, error)
}

// AtomicAppender writes at the end of the file in one atomic step without
// touching the file offset. An error satisfying errors.Is(err,
// errors.ErrUnsupported) means the host lacks the primitive; File then stops
// trying it.
type AtomicAppender interface {
	PwritevAppend(bufs [][]byte) (int, error)
}

// FlagSetter reads and writes the descriptor status flags.
type FlagSetter interface {
	GetFlags() (int, error)
	SetFlags(flags int) error

	// AppendFlag returns the status flag bit that enables append mode.
	AppendFlag() int
}

// Duplicate is an independent handle to the same file with its own file
// offset.
type Duplicate interface {
	Cursor
	Identity() (Identity, error)
	Close() error
}

// Duplicator opens Duplicates. byPath reports whether the duplicate was
// opened by resolving a path, in which case it may refer to a different file
// than the original and must be checked.
type Duplicator interface {
	Duplicate(mode Mode, by DuplicateBy) (dup Duplicate, byPath bool, err error)
}

// adviser is implemented by hosts that accept access pattern hints.
type adviser interface {
	Advise(offset, length uint64, advice Advice) error
}

// allocator is implemented by hosts that can preallocate file space.
type allocator interface {
	Allocate(offset, length uint64) error
}

// fdFlagger is implemented by hosts that can report and change FdFlags.
type fdFlagger interface {
	FdFlags() (FdFlags, error)
	SetFdFlags(FdFlags) error
}

// Capabilities reports whether the vectored operations of a File transfer
// all their buffers in one system call. When false, a best-effort vectored
// call transfers at most the first non-empty buffer.
type Capabilities struct {
	ReadVectoredAt  bool
	WriteVectoredAt bool
	AppendVectored  bool
}
