package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"interestsearch/internal/config"
)

// ConfigCommand creates the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: withEnv(initConfig),
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: withEnv(showConfig),
			},
		},
	}
}

// initConfig writes the defaults, with any flag overrides applied
func initConfig(ctx context.Context, c *cli.Command, e *env) error {
	path := e.cfgSvc.Path()
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if err := applyOverrides(c, cfg); err != nil {
		return err
	}
	if err := e.cfgSvc.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(c.Root().Writer, "Configuration initialized at %s\n", path)
	return nil
}

func showConfig(ctx context.Context, c *cli.Command, e *env) error {
	data, err := e.cfg.Redacted().Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	w := c.Root().Writer
	fmt.Fprintf(w, "# %s\n", e.cfgSvc.Path())
	_, err = w.Write(data)
	return err
}
