// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/invoice-generator-api/pkg/invoice"
	"github.com/invoice-generator-api/pkg/logging"
)

// Config holds configuration for the HTTP server, storage and the printed
// letterhead.
type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	OutputDir       string        `yaml:"output_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Log             Log           `yaml:"log"`
	Letterhead      Letterhead    `yaml:"letterhead"`
	Footer          Footer        `yaml:"footer"`
}

// Log selects the logger level and output format ("json" or "text").
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Letterhead is the sender identity block.
type Letterhead struct {
	CompanyName string `yaml:"company_name"`
	Address     string `yaml:"address"`
	Contact     string `yaml:"contact"`
}

// Footer holds the three footer lines.
type Footer struct {
	Terms   string `yaml:"terms"`
	Banking string `yaml:"banking"`
	Thanks  string `yaml:"thanks"`
}

// Default returns the built-in configuration.
func Default() Config {
	lh := invoice.DefaultLetterhead()
	return Config{
		HTTPAddr:        ":8000",
		OutputDir:       "output",
		ShutdownTimeout: 15 * time.Second,
		Log:             Log{Level: "info", Format: "json"},
		Letterhead: Letterhead{
			CompanyName: lh.CompanyName,
			Address:     lh.Address,
			Contact:     lh.Contact,
		},
		Footer: Footer{
			Terms:   lh.Terms,
			Banking: lh.Banking,
			Thanks:  lh.Thanks,
		},
	}
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	return nil
}

// InvoiceLetterhead converts the configured identity into the composer's form.
func (c Config) InvoiceLetterhead() invoice.Letterhead {
	return invoice.Letterhead{
		CompanyName: c.Letterhead.CompanyName,
		Address:     c.Letterhead.Address,
		Contact:     c.Letterhead.Contact,
		Terms:       c.Footer.Terms,
		Banking:     c.Footer.Banking,
		Thanks:      c.Footer.Thanks,
	}
}
