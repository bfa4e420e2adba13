package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/yaml"

	"github.com/invoice-generator-api/pkg/invoice"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "compose an invoice from a YAML or JSON request file and store it",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "request",
				Aliases:  []string{"r"},
				Usage:    "billing request file (YAML or JSON)",
				Required: true,
			},
		},
		Action: render,
	}
}

func render(c *cli.Context) error {
	d, err := setup(c)
	if err != nil {
		return err
	}
	path := c.String("request")
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	var p invoice.Payload
	if err := yaml.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("parsing request %s: %w", path, err)
	}
	req, err := p.Request()
	if err != nil {
		return err
	}
	filename, pdf, err := d.composer.ComposeBytes(req)
	if err != nil {
		return err
	}
	if err := d.store.Put(filename, pdf); err != nil {
		return err
	}
	d.log.Info("invoice_created", "filename", filename, "items", len(req.Items), "bytes", len(pdf))
	fmt.Fprintln(c.App.Writer, filename)
	return nil
}
