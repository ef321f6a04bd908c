package core

import (
	"fmt"

	"github.com/user/icomerge/internal/assembler"
	"github.com/user/icomerge/internal/logger"
	"github.com/user/icomerge/internal/registry"
	"github.com/user/icomerge/internal/syserr"
	"github.com/user/icomerge/internal/verify"
)

// Compile lays out the registered icons and writes them to output. On
// failure the partially written file is left as is.
func (s *Service) Compile(reg *registry.Registry, output string) error {
	fmt.Fprint(s.out, "Compiling: ")

	entries, err := assembler.Layout(reg)
	if err != nil {
		return s.fail(output, err)
	}

	w, err := s.fs.Create(output)
	if err != nil {
		return s.fail(output, err)
	}
	fmt.Fprintf(s.out, "%d icons...\n", len(entries))

	asm := assembler.New(s.cfg.BufferSize)
	asm.Progress = func(e registry.Entry, label string) {
		fmt.Fprintf(s.out, " [%s] %s (%s) from %08x:%d to %08x\n",
			e.Key, e.Source.Path, label, e.Source.Offset, e.Source.Size, e.Source.Target)
	}

	if err := asm.Emit(w, entries); err != nil {
		w.Close()
		return s.fail(output, err)
	}
	if err := w.Close(); err != nil {
		return s.fail(output, err)
	}

	if s.cfg.Verify {
		if err := s.verify(output, entries); err != nil {
			return s.fail(output, err)
		}
		fmt.Fprintf(s.out, "Verified %d icons.\n", len(entries))
	}

	fmt.Fprintln(s.out, "Done.")
	logger.Info("Wrote %d icons to %s", len(entries), output)
	return nil
}

func (s *Service) verify(output string, entries []registry.Entry) error {
	f, err := s.fs.Open(output)
	if err != nil {
		return err
	}
	defer f.Close()
	return verify.Container(f, entries, s.cfg.BufferSize)
}

func (s *Service) fail(output string, err error) error {
	syserr.Report(s.out, err)
	logger.Error("%s: %v", output, err)
	return fmt.Errorf("%s: %w", output, err)
}
