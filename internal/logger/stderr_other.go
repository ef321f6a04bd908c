//go:build !unix && !windows

package logger

import (
	"errors"
	"os"
)

func redirectStderr(*os.File) error {
	return errors.New("stderr redirection not supported")
}
