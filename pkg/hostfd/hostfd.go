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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// Package hostfd provides positional I/O on host file descriptors: reads and
// writes at an explicit offset that neither use nor move the descriptor's
// file offset, and appends that ignore it.
//
// Each function issues a single syscall and returns its error unchanged,
// including EINTR.
package hostfd

import "github.com/walteh/xio/pkg/rawfile"

// MaxReadWriteIov is the maximum permitted size of a struct iovec array in a
// preadv, pwritev or pwritev2 host syscall.
const MaxReadWriteIov = rawfile.MaxReadWriteIov
