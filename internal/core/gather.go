package core

import (
	"fmt"
	"strings"

	"github.com/user/icomerge/internal/logger"
	"github.com/user/icomerge/internal/registry"
	"github.com/user/icomerge/internal/sniffer"
	"github.com/user/icomerge/internal/syserr"
)

// Gather classifies every input and registers its icons. Inputs that can't be
// opened, read or used are reported and skipped.
func (s *Service) Gather(reg *registry.Registry, inputs []string) {
	fmt.Fprintln(s.out, "Gathering:")
	for _, path := range inputs {
		s.gatherOne(reg, path)
	}
	logger.Info("Gathered %d icons", reg.Len())
}

func (s *Service) gatherOne(reg *registry.Registry, path string) {
	fmt.Fprintf(s.out, " [%s]:", path)

	f, err := s.fs.Open(path)
	if err != nil {
		fmt.Fprintln(s.out)
		s.report(path, err)
		return
	}

	res, err := sniffer.Sniff(f, path)
	if res != nil {
		fmt.Fprint(s.out, describe(res))
	}

	if err != nil {
		f.Close()
		if sniffer.IsRejection(err) {
			fmt.Fprintf(s.out, "%s%s\n", rejectSeparator(res), err)
			logger.Warning("Skipped %s: %v", path, err)
			return
		}
		fmt.Fprintln(s.out)
		s.report(path, err)
		return
	}
	fmt.Fprintln(s.out)

	for _, e := range res.Entries {
		if _, ok := reg.Get(e.Key); ok {
			logger.Debug("%s from %s replaces an earlier source", e.Key, path)
		}
		reg.Upsert(e.Key, e.Source)
	}
	s.open = append(s.open, f)
	logger.Info("Registered %d icons from %s (%s)", len(res.Entries), path, res.Kind)
}

func (s *Service) report(path string, err error) {
	syserr.Report(s.out, err)
	logger.Error("%s: %v", path, err)
}

// describe renders what was found, e.g. " 16x16x32" for a PNG or
// " 2 icons: 32x32x32, 48x48x32" for an ICO.
func describe(res *sniffer.Result) string {
	switch res.Kind {
	case sniffer.KindPNG:
		return fmt.Sprintf(" %dx%dx%d", res.Width, res.Height, res.BitDepth)
	case sniffer.KindICO:
		keys := make([]string, 0, len(res.Entries))
		for _, e := range res.Entries {
			keys = append(keys, " "+e.Key.String())
		}
		return fmt.Sprintf(" %d icons:%s", res.Count, strings.Join(keys, ","))
	default:
		return ""
	}
}

func rejectSeparator(res *sniffer.Result) string {
	if res != nil && res.Kind == sniffer.KindPNG {
		return ": "
	}
	return " "
}
