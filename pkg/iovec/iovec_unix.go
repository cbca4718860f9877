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

//go:build unix

package iovec

import "golang.org/x/sys/unix"

// Build builds an iovec slice from the given []byte slices, skipping empty
// buffers. It returns the iovecs and the total number of bytes they cover.
//
// iovecs is used as an initial slice, to avoid excessive allocations.
func Build(bufs [][]byte, iovecs []unix.Iovec) ([]unix.Iovec, int) {
	var length int
	for i := range bufs {
		if l := len(bufs[i]); l > 0 {
			iov := unix.Iovec{Base: &bufs[i][0]}
			iov.SetLen(l)
			iovecs = append(iovecs, iov)
			length += l
		}
	}
	return iovecs, length
}
