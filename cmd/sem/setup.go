package main

import (
	"log/slog"
	"os"

	"sem/internal/config"
	"sem/internal/gitbridge"
	"sem/internal/slogutil"
)

// cliEnv bundles what almost every command needs: the repository bridge, the
// loaded configuration and a logger honouring the verbosity flags.
type cliEnv struct {
	bridge *gitbridge.Bridge
	cfg    *config.Config
	logger *slog.Logger
}

// setupEnv discovers the repository from the working directory. Commands
// that require a repo call this and fail red on error.
func setupEnv() (*cliEnv, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	logger := slogutil.NewLogger(os.Stderr, logLevel())

	bridge, err := gitbridge.Open(cwd, logger)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(bridge.RepoRoot())
	if err != nil {
		return nil, err
	}
	bridge.SetIgnore(cfg.Ignore)

	return &cliEnv{bridge: bridge, cfg: cfg, logger: logger}, nil
}

func logLevel() slog.Level {
	switch {
	case verboseFlag >= 2:
		return slog.LevelDebug
	case verboseFlag == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
