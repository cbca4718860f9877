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
)

// testHookBeforeReopen, if set, is called with the resolved path between
// resolving a handle's path and opening it. It is not synchronized: tests
// that set it must not run in parallel with other tests.
var testHookBeforeReopen func(path string)

// duplicate opens an independent handle to f's file with the given mode.
//
// A duplicate opened by path is verified to refer to the same file as f;
// if it does not, it is closed and ErrConcurrentRename is returned.
func (f *File) duplicate(mode Mode) (Duplicate, error) {
	d, ok := f.p.(Duplicator)
	if !ok {
		return nil, ErrUnsupported
	}
	var (
		dup    Duplicate
		byPath bool
		err    error
	)
	for {
		dup, byPath, err = d.Duplicate(mode, f.opts.DuplicateBy)
		if !isInterrupted(err) {
			break
		}
	}
	if err != nil {
		return nil, surface(err)
	}
	if byPath {
		if err := f.checkIdentity(dup); err != nil {
			dup.Close()
			return nil, err
		}
	}
	return dup, nil
}

// checkIdentity fails with ErrConcurrentRename unless dup and f refer to the
// same file.
func (f *File) checkIdentity(dup Duplicate) error {
	want, err := retryEINTR(f.p.Identity)
	if err != nil {
		return err
	}
	got, err := retryEINTR(dup.Identity)
	if err != nil {
		return err
	}
	if got != want {
		f.log.WithField("want", want).WithField("got", got).Warn("Reopened handle refers to a different file")
		return ErrConcurrentRename
	}
	return nil
}

// seekTo moves the offset of c to off.
func seekTo(c Cursor, off uint64) error {
	o, err := hostOffset(off)
	if err != nil {
		return err
	}
	_, err = retryEINTR(func() (int64, error) {
		return c.Seek(o, io.SeekStart)
	})
	return err
}

// cursorAttempt transfers at the current offset of c and ignores off.
func cursorAttempt(c Cursor, dir direction) attempt {
	if dir == inbound {
		return func(bufs [][]byte, _ uint64) (int, error) {
			return c.Readv(bufs)
		}
	}
	return func(bufs [][]byte, _ uint64) (int, error) {
		return c.Writev(bufs)
	}
}

// seekingAttempt seeks c to off before each transfer.
func seekingAttempt(c Cursor, dir direction) attempt {
	do := cursorAttempt(c, dir)
	return func(bufs [][]byte, off uint64) (int, error) {
		if err := seekTo(c, off); err != nil {
			return 0, err
		}
		return do(bufs, off)
	}
}

// positionalAttempt uses native offset-addressed I/O.
func positionalAttempt(pos Positional, dir direction) attempt {
	if dir == inbound {
		return pos.Preadv
	}
	return pos.Pwritev
}

// at runs fn with an attempt that transfers at explicit offsets without
// moving f's file offset. A duplicate, if one is needed, is opened once and
// shared by every attempt fn makes.
func (f *File) at(dir direction, fn func(do attempt) error) (err error) {
	if f.opts.Strategy != StrategyReopen {
		if pos, ok := f.p.(Positional); ok {
			return fn(positionalAttempt(pos, dir))
		}
	}
	mode := ModeRead
	if dir == outbound {
		mode = ModeWrite
	}
	dup, err := f.duplicate(mode)
	if err != nil {
		return err
	}
	defer func() {
		// A failed close may report a deferred write error. EINTR from
		// close still releases the descriptor.
		if cerr := dup.Close(); err == nil && mode != ModeRead && !isInterrupted(cerr) {
			err = cerr
		}
	}()
	return fn(seekingAttempt(dup, dir))
}
