// Package core drives the merge: gather inputs into a registry, then compile
// the registry into one ICO container.
package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/user/icomerge/internal/config"
	"github.com/user/icomerge/internal/logger"
	"github.com/user/icomerge/internal/registry"
)

// ErrNoValidInputs is returned by Run when no input contributed an icon.
var ErrNoValidInputs = errors.New("no valid inputs")

// File is an open input file.
type File interface {
	io.ReadSeeker
	io.Closer
}

// FileSystem opens inputs and creates the output.
type FileSystem interface {
	Open(name string) (File, error)
	Create(name string) (io.WriteCloser, error)
}

type osFS struct{}

func (osFS) Open(name string) (File, error)             { return os.Open(name) }
func (osFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }

// Service is the merge workflow.
type Service struct {
	cfg  *config.Config
	fs   FileSystem
	out  io.Writer
	open []File // accepted inputs, kept open for the copy
}

// NewService creates a service writing progress to out.
func NewService(cfg *config.Config, out io.Writer) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{
		cfg: cfg,
		fs:  osFS{},
		out: out,
	}
}

// SetFileSystem replaces the OS file system.
func (s *Service) SetFileSystem(fs FileSystem) {
	s.fs = fs
}

// Run merges inputs into output. Failures are reported to the console where
// they happen; the returned error only tells the caller how it went.
func (s *Service) Run(output string, inputs []string) error {
	logger.Info("Merging %d inputs into %s", len(inputs), output)

	reg := registry.New()
	s.Gather(reg, inputs)

	if reg.Len() == 0 {
		fmt.Fprintln(s.out, "no valid inputs")
		logger.Warning("No valid inputs")
		return ErrNoValidInputs
	}

	return s.Compile(reg, output)
}

// Close closes every input the service kept open.
func (s *Service) Close() error {
	var errs []error
	for _, f := range s.open {
		errs = append(errs, f.Close())
	}
	s.open = nil
	return errors.Join(errs...)
}
