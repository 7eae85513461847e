package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chixitown/site/internal/api"
	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "site",
		Usage:   "blog server, feed exporter and analytics summary proxy",
		Version: api.Version,
		Commands: []*cli.Command{
			serveCommand(),
			exportCommand(),
			summaryCommand(),
		},
	}
}

// env bundles what every command loads before doing its work
type env struct {
	cfg    *config.Config
	site   config.Site
	logger *monitoring.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := monitoring.NewLoggerTo(os.Stderr, monitoring.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	site, err := config.LoadSite(cfg.SiteConfig)
	if err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}

	return &env{cfg: cfg, site: site, logger: logger}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
