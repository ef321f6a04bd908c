// icomerge combines PNG and ICO files into a single multi-resolution ICO.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/user/icomerge/internal/config"
	"github.com/user/icomerge/internal/core"
	"github.com/user/icomerge/internal/logger"
)

// captureStderr sends panics to the log file once logging is on.
var captureStderr = logger.CaptureStderr

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Combines multiple ICO/PNGs into single ICO file, retaining format of each sub-image and optimizing order.")
	fmt.Fprintln(out, "If multiple images for a given format are provided, the last one is used.")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Usage: %s [options] output.ico input1.png [input2.ico] [...]\n", fs.Name())
	fs.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("icomerge", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() { usage(fs) }

	configPath := fs.String("config", config.GetConfigPath(), "configuration file")
	verifyOut := fs.Bool("verify", false, "re-read the output and compare every payload")
	logToFile := fs.Bool("log", false, "append a log to icomerge.log")
	initConfig := fs.Bool("init-config", false, "write the default configuration file and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	manager := config.NewManager(*configPath)

	// Rewriting the defaults must work even over a broken file.
	if *initConfig {
		if err := manager.Save(); err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", manager.Path())
		return 0
	}

	if fs.NArg() < 2 {
		usage(fs)
		return 2
	}

	if err := manager.Load(); err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	cfg := manager.Get()
	if *verifyOut {
		cfg.Verify = true
	}
	if *logToFile {
		cfg.Log.Enabled = true
	}
	if cfg.Log.Enabled {
		if err := logger.Init(cfg.Log.File); err != nil {
			fmt.Fprintf(stdout, "log: %v\n", err)
		} else if err := captureStderr(); err != nil {
			logger.Warning("stderr stays on the console: %v", err)
		}
	}
	defer logger.Close()

	svc := core.NewService(cfg, stdout)
	defer svc.Close()

	err := svc.Run(fs.Arg(0), fs.Args()[1:])
	switch {
	case err == nil, errors.Is(err, core.ErrNoValidInputs):
		return 0
	default:
		return 1
	}
}
