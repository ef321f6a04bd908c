//go:build !unix && !windows

package syserr

import "syscall"

func describe(errno syscall.Errno) string {
	return errno.Error()
}
