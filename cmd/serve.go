package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/invoice-generator-api/pkg/api"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				EnvVars: []string{"HTTP_ADDR"},
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Usage:   "grace period for in-flight requests",
				EnvVars: []string{"SHUTDOWN_TIMEOUT"},
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	d, err := setup(c)
	if err != nil {
		return err
	}
	d.log.Info("service_starting", "output_dir", d.store.Root())

	app := api.NewApp(d.composer, d.store, d.log)
	srv := &http.Server{
		Addr:              d.cfg.HTTPAddr,
		Handler:           api.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		d.log.Info("http_listen", "addr", d.cfg.HTTPAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("http_server_error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		d.log.Info("shutdown_signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		d.log.Error("http_shutdown_error", "error", err)
		return err
	}
	d.log.Info("service_stopped")
	return nil
}
