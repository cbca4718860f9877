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

// Package fd provides a host handle (a unix file descriptor or a Windows
// HANDLE) tagged with whether it is owned or borrowed.
//
// An owned FD closes its handle on Close. A borrowed FD is a view: Close
// only detaches it, and the handle stays open for its real owner.
package fd

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
)

// Ownership says whether an FD is responsible for closing its handle.
type Ownership uint8

const (
	// Borrowed handles are never closed by this package.
	Borrowed Ownership = iota

	// Owned handles are closed by FD.Close.
	Owned
)

// String implements fmt.Stringer.String.
func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return fmt.Sprintf("Ownership(%d)", uint8(o))
	}
}

// FD is a host handle with an ownership tag.
//
// FD is safe to share between goroutines; the handle itself carries no
// synchronization beyond what the host provides.
type FD struct {
	sysfd  uintptr
	owner  Ownership
	closed atomic.Bool

	// keep pins the object the handle was borrowed from, so that its
	// finalizer cannot close the handle while this view is alive.
	keep any
}

// New returns an FD that owns sysfd.
func New(sysfd uintptr) *FD {
	return &FD{sysfd: sysfd, owner: Owned}
}

// Borrow returns an FD that references sysfd without owning it. The caller
// must keep sysfd open for as long as the FD is used.
func Borrow(sysfd uintptr) *FD {
	return &FD{sysfd: sysfd, owner: Borrowed}
}

// FromFile returns a borrowed view of f's handle. Unlike f.Fd, it does not
// switch f to blocking mode. f stays reachable for the lifetime of the FD.
func FromFile(f *os.File) (*FD, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, err
	}
	var sysfd uintptr
	if err := rc.Control(func(h uintptr) { sysfd = h }); err != nil {
		return nil, err
	}
	return &FD{sysfd: sysfd, owner: Borrowed, keep: f}, nil
}

// Sysfd returns the host handle. It must not be used after Close.
func (f *FD) Sysfd() uintptr {
	return f.sysfd
}

// FD returns the handle as a unix file descriptor.
func (f *FD) FD() int {
	return int(f.sysfd)
}

// Ownership returns the ownership tag of f.
func (f *FD) Ownership() Ownership {
	return f.owner
}

// Release transfers ownership of the handle to the caller. Afterwards Close
// does not close it.
func (f *FD) Release() uintptr {
	f.owner = Borrowed
	return f.sysfd
}

// Close closes the handle if f owns it. Closing a borrowed FD only detaches
// the view. Close is idempotent.
func (f *FD) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	defer runtime.KeepAlive(f.keep)
	f.keep = nil
	if f.owner != Owned {
		return nil
	}
	return closeHandle(f.sysfd)
}
