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

	"golang.org/x/sys/windows"

	"github.com/walteh/xio/pkg/fd"
	"github.com/walteh/xio/pkg/iovec"
)

// fileReadAttributes lets a duplicate opened for writing still be
// identified.
const fileReadAttributes = 0x80

// windowsFile is a synchronous file HANDLE. Windows has no positional I/O
// that leaves the file pointer alone, so everything offset-addressed or
// appending goes through a handle reopened by path.
type windowsFile struct {
	h windows.Handle
}

func newPlatform(h *fd.FD, opts *Options) (Primitives, Capabilities, error) {
	if opts.DuplicateBy == DuplicateByHandle {
		return nil, Capabilities{}, ErrUnsupported
	}
	return windowsFile{h: windows.Handle(h.Sysfd())}, Capabilities{}, nil
}

// Readv implements Cursor.Readv. Only the first non-empty buffer is used.
func (w windowsFile) Readv(bufs [][]byte) (int, error) {
	b := iovec.FirstNonEmpty(bufs)
	if len(b) == 0 {
		return 0, nil
	}
	var done uint32
	err := windows.ReadFile(w.h, b, &done, nil)
	if errors.Is(err, windows.ERROR_BROKEN_PIPE) || errors.Is(err, windows.ERROR_HANDLE_EOF) {
		return 0, nil
	}
	return int(done), err
}

// Writev implements Cursor.Writev. Only the first non-empty buffer is used.
func (w windowsFile) Writev(bufs [][]byte) (int, error) {
	b := iovec.FirstNonEmpty(bufs)
	if len(b) == 0 {
		return 0, nil
	}
	var done uint32
	err := windows.WriteFile(w.h, b, &done, nil)
	return int(done), err
}

// Seek implements Cursor.Seek.
func (w windowsFile) Seek(offset int64, whence int) (int64, error) {
	return windows.Seek(w.h, offset, whence)
}

func (w windowsFile) info() (windows.ByHandleFileInformation, error) {
	var info windows.ByHandleFileInformation
	err := windows.GetFileInformationByHandle(w.h, &info)
	return info, err
}

// Identity implements Primitives.Identity.
func (w windowsFile) Identity() (Identity, error) {
	info, err := w.info()
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Volume: uint64(info.VolumeSerialNumber),
		Index:  uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
	}, nil
}

// Size implements Primitives.Size.
func (w windowsFile) Size() (uint64, error) {
	info, err := w.info()
	if err != nil {
		return 0, err
	}
	return uint64(info.FileSizeHigh)<<32 | uint64(info.FileSizeLow), nil
}

// path returns the final path of the file.
func (w windowsFile) path() (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetFinalPathNameByHandle(w.h, &buf[0], uint32(len(buf)), windows.FILE_NAME_NORMALIZED|windows.VOLUME_NAME_DOS)
		if err != nil {
			return "", err
		}
		// On a short buffer n is the required size including the NUL.
		if int(n) < len(buf) {
			return windows.UTF16ToString(buf[:n]), nil
		}
		buf = make([]uint16, n)
	}
}

// Duplicate implements Duplicator.Duplicate.
//
// An append duplicate is opened with FILE_APPEND_DATA but not
// FILE_WRITE_DATA, so every write lands at the end of the file.
func (w windowsFile) Duplicate(mode Mode, _ DuplicateBy) (Duplicate, bool, error) {
	path, err := w.path()
	if err != nil {
		return nil, false, err
	}
	if testHookBeforeReopen != nil {
		testHookBeforeReopen(path)
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, false, err
	}
	var access uint32
	switch mode {
	case ModeWrite:
		access = windows.GENERIC_WRITE
	case ModeAppend:
		access = windows.FILE_APPEND_DATA | windows.SYNCHRONIZE
	default:
		access = windows.GENERIC_READ
	}
	h, err := windows.CreateFile(p, access|fileReadAttributes,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, false, err
	}
	return windowsDup{windowsFile{h: h}}, true, nil
}

// windowsDup is a reopened handle owned by the engine.
type windowsDup struct {
	windowsFile
}

// Close implements Duplicate.Close.
func (d windowsDup) Close() error {
	return windows.CloseHandle(d.h)
}
