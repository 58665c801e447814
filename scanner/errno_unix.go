//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package scanner

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func errnoName(errno syscall.Errno) string {
	return unix.ErrnoName(errno)
}
