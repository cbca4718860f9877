package fileio

import (
	"bytes"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

var hostFlags = []hostFlag{
	{FdAppend, unix.O_APPEND},
	{FdDsync, unix.O_DSYNC},
	{FdNonblock, unix.O_NONBLOCK},
	{FdSync, unix.O_SYNC},
}

// darwinFile reopens through the path reported by F_GETPATH.
type darwinFile struct {
	unixFile
}

func bsdPrimitives(u unixFile) Primitives {
	return darwinFile{u}
}

// path returns the current path of the file, as for fcntl(F_GETPATH).
func (d darwinFile) path() (string, error) {
	var buf [unix.PathMax]byte
	_, _, e := syscall.Syscall(syscall.SYS_FCNTL, uintptr(d.fd), uintptr(syscall.F_GETPATH), uintptr(unsafe.Pointer(&buf[0])))
	if e != 0 {
		return "", e
	}
	if i := bytes.IndexByte(buf[:], 0); i >= 0 {
		return string(buf[:i]), nil
	}
	return string(buf[:]), nil
}

// Duplicate implements Duplicator.Duplicate. There is no way to reopen the
// descriptor itself, so every duplicate is opened by path.
func (d darwinFile) Duplicate(mode Mode, by DuplicateBy) (Duplicate, bool, error) {
	if by == DuplicateByHandle {
		return nil, false, ErrUnsupported
	}
	path, err := d.path()
	if err != nil {
		return nil, false, err
	}
	if testHookBeforeReopen != nil {
		testHookBeforeReopen(path)
	}
	dup, err := reopen(path, mode)
	return dup, true, err
}
