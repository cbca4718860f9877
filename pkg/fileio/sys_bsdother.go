//go:build dragonfly || freebsd || netbsd || openbsd

package fileio

import (
	"golang.org/x/sys/unix"
)

var hostFlags = []hostFlag{
	{FdAppend, unix.O_APPEND},
	{FdNonblock, unix.O_NONBLOCK},
	{FdSync, unix.O_SYNC},
}

// bsdPrimitives has no way to learn the path of a descriptor, so it cannot
// duplicate.
func bsdPrimitives(u unixFile) Primitives {
	return u
}
