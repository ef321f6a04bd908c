//go:build unix

package syserr

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func describe(errno syscall.Errno) string {
	if name := unix.ErrnoName(errno); name != "" {
		return errno.Error() + " (" + name + ")"
	}
	return errno.Error()
}
