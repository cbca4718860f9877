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
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// appending runs fn with an attempt that writes at the end of the file.
func (f *File) appending(fn func(do attempt) error) (err error) {
	if f.opts.Strategy != StrategyReopen && f.nativeAppend() {
		return fn(func(bufs [][]byte, _ uint64) (int, error) {
			return f.appendOnce(bufs)
		})
	}
	dup, err := f.duplicate(ModeAppend)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dup.Close(); err == nil && !isInterrupted(cerr) {
			err = cerr
		}
	}()
	return fn(cursorAttempt(dup, outbound))
}

// nativeAppend reports whether appends can go through f's own handle.
func (f *File) nativeAppend() bool {
	if _, ok := f.p.(FlagSetter); ok {
		return true
	}
	_, ok := f.p.(AtomicAppender)
	return ok && !f.opts.DisableAtomicAppend
}

// appendOnce performs one append attempt on f's own handle.
func (f *File) appendOnce(bufs [][]byte) (int, error) {
	if a, ok := f.p.(AtomicAppender); ok && !f.opts.DisableAtomicAppend && !f.noAtomicAppend.Load() {
		n, err := a.PwritevAppend(bufs)
		if !isUnsupported(err) {
			return n, err
		}
		if f.noAtomicAppend.CompareAndSwap(false, true) {
			f.log.WithError(err).Debug("Atomic append unavailable, toggling append mode instead")
		}
	}
	fs, ok := f.p.(FlagSetter)
	if !ok {
		return 0, ErrUnsupported
	}
	return f.toggleAppend(fs, bufs)
}

// toggleAppend puts the descriptor into append mode, writes once, and puts
// back both the status flags and the file offset, whether or not the write
// succeeded.
//
// Preconditions: nobody else uses the open file description concurrently.
func (f *File) toggleAppend(fs FlagSetter, bufs [][]byte) (n int, err error) {
	flags, err := retryEINTR(fs.GetFlags)
	if err != nil {
		return 0, err
	}
	pos, err := retryEINTR(func() (int64, error) {
		return f.p.Seek(0, io.SeekCurrent)
	})
	if err != nil {
		return 0, err
	}
	if err := ignoringEINTR(func() error { return fs.SetFlags(flags | fs.AppendFlag()) }); err != nil {
		return 0, err
	}
	defer func() {
		err = f.restore(fs, flags, pos, err)
	}()
	return f.p.Writev(bufs)
}

// restore puts back the status flags and file offset saved by toggleAppend.
// Failures are combined with the write's own error; the byte count of the
// write is kept either way.
func (f *File) restore(fs FlagSetter, flags int, pos int64, werr error) error {
	var result *multierror.Error
	if rerr := ignoringEINTR(func() error { return fs.SetFlags(flags) }); rerr != nil {
		result = multierror.Append(result, fmt.Errorf("restoring status flags: %w", rerr))
	}
	if _, rerr := retryEINTR(func() (int64, error) { return f.p.Seek(pos, io.SeekStart) }); rerr != nil {
		result = multierror.Append(result, fmt.Errorf("restoring file offset %d: %w", pos, rerr))
	}
	if result == nil {
		return werr
	}
	f.log.WithError(result).Error("Failed to restore descriptor state after append")
	// An interrupted write moved nothing and would be retried, which would
	// hide the restore failure.
	if werr != nil && !isInterrupted(werr) {
		result = multierror.Append(werr, result.Errors...)
	}
	return result.ErrorOrNil()
}
