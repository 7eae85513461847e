package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chixitown/site/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Usage: "listen port, overrides PORT"},
			&cli.BoolFlag{Name: "watch", Usage: "reload content on change, overrides WATCH_CONTENT"},
			&cli.DurationFlag{Name: "watch-interval", Value: time.Second, Usage: "content polling interval"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		e.cfg.Port = c.Int("port")
	}
	if c.IsSet("watch") {
		e.cfg.WatchContent = c.Bool("watch")
	}

	gin.SetMode(e.cfg.GinMode)

	deps := api.NewDependencies(e.cfg, e.site, e.logger)
	if err := deps.Store.Reload(); err != nil {
		return err
	}
	if dirExists(e.cfg.StaticDir) {
		deps.Static = os.DirFS(e.cfg.StaticDir)
	} else {
		e.logger.Warn("Static directory not found, serving API only", "dir", e.cfg.StaticDir)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	if e.cfg.WatchContent {
		go func() {
			if err := deps.Store.Watch(ctx, c.Duration("watch-interval")); err != nil {
				e.logger.Error("Content watcher stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              e.cfg.Addr(),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		e.logger.SystemLogger("startup", "listening on "+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	case <-ctx.Done():
	}
	e.logger.SystemLogger("shutdown", "draining connections")

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	e.logger.SystemLogger("shutdown", "server exited")
	return nil
}
