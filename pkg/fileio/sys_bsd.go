//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package fileio

import (
	"fmt"

	"github.com/walteh/xio/pkg/fd"
	"github.com/walteh/xio/pkg/hostfd"
	"github.com/walteh/xio/pkg/rawfile"
)

// newPlatform returns the BSD primitives for h. The positional and cursor
// primitives move one buffer per call, except for writes through a cursor,
// which are coalesced into a single write.
func newPlatform(h *fd.FD, opts *Options) (Primitives, Capabilities, error) {
	p := bsdPrimitives(unixFile{fd: h.FD()})
	caps := Capabilities{
		ReadVectoredAt:  hostfd.Vectored,
		WriteVectoredAt: hostfd.Vectored,
		AppendVectored:  true,
	}
	if opts.Strategy == StrategyReopen {
		if _, ok := p.(Duplicator); !ok {
			return nil, Capabilities{}, fmt.Errorf("reopen strategy: %w", ErrUnsupported)
		}
		caps.ReadVectoredAt = rawfile.VectoredCursor
		caps.WriteVectoredAt = true
	}
	return p, caps, nil
}
