// cmd/main.go

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/invoice-generator-api/pkg/config"
	"github.com/invoice-generator-api/pkg/invoice"
	"github.com/invoice-generator-api/pkg/logging"
	"github.com/invoice-generator-api/pkg/storage"
)

//	@title			Invoice Generator API
//	@version		1.0
//	@description	Generates one-page invoice PDFs and serves them back by file name.
//	@BasePath		/
func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoice-generator",
		Usage: "generate invoice PDFs over HTTP or from request files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"INVOICE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "directory holding generated invoices",
				EnvVars: []string{"OUTPUT_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "json or text",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
		},
		Action: serve,
	}
}

// loadConfig layers the config file and any flags set on the command line.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}
	if c.IsSet("shutdown-timeout") {
		cfg.ShutdownTimeout = c.Duration("shutdown-timeout")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// deps are the components shared by every command.
type deps struct {
	cfg      config.Config
	log      *slog.Logger
	store    *storage.FS
	composer *invoice.Composer
}

func setup(c *cli.Context) (*deps, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	st, err := storage.NewFS(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return &deps{
		cfg:      cfg,
		log:      log,
		store:    st,
		composer: invoice.NewComposer(cfg.InvoiceLetterhead()),
	}, nil
}
