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

// Package iovec provides helpers for ordered lists of byte buffers used by
// scatter/gather I/O.
//
// A buffer list is a [][]byte. The same helpers serve both directions: for
// reads the buffers are destinations, for writes they are sources. Buffers
// are never reordered and the bytes they reference are never copied.
package iovec

// NumBytes returns the total length of all buffers in bufs.
func NumBytes(bufs [][]byte) int {
	var n int
	for _, b := range bufs {
		n += len(b)
	}
	return n
}

// Advance consumes n bytes from the front of bufs and returns the remaining
// suffix. Fully consumed buffers are dropped and the first remaining buffer
// is resliced past the partially consumed bytes.
//
// Advance writes the resliced head back into bufs, so callers that must keep
// their original list intact should Clone it first. Advance(bufs, 0) returns
// bufs unchanged, including any leading empty buffers.
//
// Preconditions: 0 <= n <= NumBytes(bufs).
func Advance(bufs [][]byte, n int) [][]byte {
	if n == 0 {
		return bufs
	}
	if n < 0 {
		panic("iovec: negative advance")
	}
	for len(bufs) > 0 && n >= len(bufs[0]) {
		n -= len(bufs[0])
		bufs = bufs[1:]
		if n == 0 {
			return bufs
		}
	}
	if len(bufs) == 0 {
		panic("iovec: advance past end of buffers")
	}
	bufs[0] = bufs[0][n:]
	return bufs
}

// SkipEmpty drops leading zero-length buffers from bufs.
func SkipEmpty(bufs [][]byte) [][]byte {
	for len(bufs) > 0 && len(bufs[0]) == 0 {
		bufs = bufs[1:]
	}
	return bufs
}

// FirstNonEmpty returns the first buffer in bufs with a non-zero length, or
// nil if there is none. Platforms without a native scatter/gather call
// operate on this buffer alone.
func FirstNonEmpty(bufs [][]byte) []byte {
	for _, b := range bufs {
		if len(b) > 0 {
			return b
		}
	}
	return nil
}

// Truncate returns at most max buffers from the front of bufs. Vectored
// syscalls reject lists longer than the host limit, and since they may
// legitimately transfer fewer bytes than requested, capping the list only
// shortens the transfer.
func Truncate(bufs [][]byte, max int) [][]byte {
	if len(bufs) > max {
		return bufs[:max]
	}
	return bufs
}

// Clone returns a shallow copy of bufs: a new list referencing the same
// bytes, safe to pass to Advance.
func Clone(bufs [][]byte) [][]byte {
	if bufs == nil {
		return nil
	}
	return append(make([][]byte, 0, len(bufs)), bufs...)
}
