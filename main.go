package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lumipallolabs/dirtree/internal/cli"
	"github.com/lumipallolabs/dirtree/internal/logging"
)

// startProfile writes a CPU profile to path until the returned stop is called
func startProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("start CPU profile: %w", err)
	}
	logging.Debug.Debug("CPU profiling enabled", zap.String("path", path))
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func run() error {
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		stopProfile, err := startProfile(cpuProfile)
		if err != nil {
			return err
		}
		defer stopProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand(afero.NewReadOnlyFs(afero.NewOsFs()))
	return cmd.ExecuteContext(ctx)
}

func main() {
	if err := run(); err != nil {
		logging.Debug.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
