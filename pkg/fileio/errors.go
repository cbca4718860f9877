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
	"errors"
	"fmt"
	"math"
	"syscall"

	"code.hybscloud.com/iox"
	"github.com/containerd/errdefs"
)

var (
	// ErrOffsetOverflow is returned when adding the bytes transferred so far
	// to the starting offset overflows a uint64.
	ErrOffsetOverflow = errors.New("offset overflow")

	// ErrInvalidOffset is returned for offsets beyond the largest file offset
	// the host accepts.
	ErrInvalidOffset = fmt.Errorf("offset out of range: %w", errdefs.ErrInvalidArgument)

	// ErrConcurrentRename is returned when a handle reopened by path no longer
	// refers to the same file as the original handle.
	ErrConcurrentRename = fmt.Errorf("file was concurrently renamed: %w", errdefs.ErrFailedPrecondition)

	// ErrInvalidUTF8 is returned when text read from a file is not valid
	// UTF-8.
	ErrInvalidUTF8 = fmt.Errorf("file content is not valid UTF-8: %w", errdefs.ErrInvalidArgument)

	// ErrUnsupported is returned for operations the host cannot honor.
	ErrUnsupported = fmt.Errorf("%w: %w", errors.ErrUnsupported, errdefs.ErrNotImplemented)
)

// isInterrupted reports whether err is EINTR.
func isInterrupted(err error) bool {
	return err != nil && errors.Is(err, syscall.EINTR)
}

// isUnsupported reports whether err means the primitive does not exist on
// this host (ENOSYS, ENOTSUP, EOPNOTSUPP and their Windows equivalents).
func isUnsupported(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, errors.ErrUnsupported) || errors.Is(err, syscall.ENOSYS) || errors.Is(err, syscall.EOPNOTSUPP)
}

// wouldBlockError is a host EAGAIN that also carries the iox would-block
// semantic, so callers driving non-blocking handles can use iox.Classify.
type wouldBlockError struct {
	err error
}

// Error implements error.Error.
func (e *wouldBlockError) Error() string {
	return e.err.Error()
}

// Unwrap exposes both the host error and iox.ErrWouldBlock to errors.Is.
func (e *wouldBlockError) Unwrap() []error {
	return []error{e.err, iox.ErrWouldBlock}
}

// surface prepares an error from a primitive for return to the caller.
func surface(err error) error {
	if err != nil && errors.Is(err, syscall.EAGAIN) && !iox.IsWouldBlock(err) {
		return &wouldBlockError{err: err}
	}
	return err
}

// retryEINTR calls fn until it returns something other than EINTR.
func retryEINTR[T any](fn func() (T, error)) (T, error) {
	for {
		v, err := fn()
		if !isInterrupted(err) {
			return v, err
		}
	}
}

// ignoringEINTR calls fn until it returns something other than EINTR.
func ignoringEINTR(fn func() error) error {
	for {
		if err := fn(); !isInterrupted(err) {
			return err
		}
	}
}

// hostOffset converts off to the signed offset host calls take.
func hostOffset(off uint64) (int64, error) {
	if off > math.MaxInt64 {
		return 0, ErrInvalidOffset
	}
	return int64(off), nil
}
