//go:build windows

package syserr

import (
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

func describe(errno syscall.Errno) string {
	buf := make([]uint16, 512)
	flags := uint32(windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS |
		windows.FORMAT_MESSAGE_MAX_WIDTH_MASK)
	n, err := windows.FormatMessage(flags, 0, uint32(errno), 0, buf, nil)
	if err != nil || n == 0 {
		return errno.Error()
	}
	return strings.TrimSpace(windows.UTF16ToString(buf[:n]))
}
