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

// Package fileio provides positional, vectored and append-mode I/O on open
// file handles with one contract across host platforms.
//
// Positional and append operations leave no trace on the handle: reads and
// writes at an offset do not move the handle's file offset, and appends
// write at the end of the file without moving it either.
//
// Where the host has a native primitive (pread/pwrite/preadv/pwritev,
// pwritev2 with RWF_APPEND) it is used directly. Otherwise:
//
//   - Positional access reopens an independent handle to the same file,
//     seeks it, performs the cursor-based call on it, and closes it. When the
//     reopen resolves a path, the identities of both handles are compared and
//     a mismatch fails with ErrConcurrentRename.
//   - Appends switch the descriptor into append mode, write, and restore both
//     the descriptor flags and the file offset. This is not atomic with
//     respect to other users of the same open file description. On Windows an
//     append-only handle is reopened instead.
//
// Calls without an Exact/All suffix perform one transfer and may move fewer
// bytes than requested. Exact/All calls loop until every byte is moved.
// Interrupted system calls are retried internally and never returned.
package fileio
