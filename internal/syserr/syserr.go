// Package syserr prints operating system failures the way the tool has
// always reported them: the numeric code followed by the system's text.
package syserr

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Code extracts the OS error number wrapped in err.
func Code(err error) (uint32, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno), true
	}
	return 0, false
}

// Format renders err as a single report line without the trailing newline.
// Codes from 0x4000 up (HRESULT-style on Windows) are printed in hex.
func Format(err error) string {
	code, ok := Code(err)
	if !ok {
		return fmt.Sprintf("error: %v", err)
	}
	if code >= 0x4000 {
		return fmt.Sprintf("error 0x%08X: %s", code, describe(syscall.Errno(code)))
	}
	return fmt.Sprintf("error %d: %s", code, describe(syscall.Errno(code)))
}

// Report writes the report line for err to w.
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
}
