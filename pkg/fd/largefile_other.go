//go:build !linux

package fd

// O_LARGEFILE is a Linux-specific flag passed to open(2).
//
// Large file support is implicit on every other platform this module
// supports, so the flag is defined as 0 here. This allows common code that
// ORs this flag during the open(2) call to compile without error, while
// ensuring the flag has no effect.
const O_LARGEFILE = 0
