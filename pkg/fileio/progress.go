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

	"github.com/walteh/xio/pkg/iovec"
)

// attempt performs one transfer of bufs at off. Cursor and append attempts
// ignore off.
type attempt func(bufs [][]byte, off uint64) (int, error)

// direction is the direction of a transfer.
type direction uint8

const (
	inbound direction = iota
	outbound
)

// progress is the state of a loop that must move every byte of bufs.
//
// bufs never holds empty buffers at the front, so the loop is finished
// exactly when bufs is empty.
type progress struct {
	bufs       [][]byte
	off        uint64
	dir        direction
	positional bool
}

func (p progress) done() bool {
	return len(p.bufs) == 0
}

// step accounts for n bytes transferred by the last attempt.
func (p progress) step(n int) (progress, error) {
	if n == 0 {
		if p.dir == inbound {
			return p, io.ErrUnexpectedEOF
		}
		return p, io.ErrShortWrite
	}
	if n < 0 || n > iovec.NumBytes(p.bufs) {
		return p, fmt.Errorf("transfer of %d bytes outside of [1, %d]", n, iovec.NumBytes(p.bufs))
	}
	if p.positional {
		off := p.off + uint64(n)
		if off < p.off {
			return p, ErrOffsetOverflow
		}
		p.off = off
	}
	p.bufs = iovec.SkipEmpty(iovec.Advance(p.bufs, n))
	return p, nil
}

// once performs a single best-effort transfer, retrying EINTR.
func once(do attempt, bufs [][]byte, off uint64) (int, error) {
	for {
		n, err := do(bufs, off)
		if err == nil {
			return n, nil
		}
		if !isInterrupted(err) {
			// Raw syscall wrappers report -1 alongside errors.
			return max(n, 0), surface(err)
		}
	}
}

// drive runs attempts until p is done. EINTR is retried without advancing.
// The caller's slice of buffers is not modified.
func drive(do attempt, p progress) error {
	p.bufs = iovec.SkipEmpty(iovec.Clone(p.bufs))
	for !p.done() {
		n, err := do(p.bufs, p.off)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return surface(err)
		}
		if p, err = p.step(n); err != nil {
			return err
		}
	}
	return nil
}
