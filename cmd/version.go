package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"interestsearch/internal/version"
)

// VersionCommand creates the version command
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Fprintf(c.Root().Writer, "interestsearch %s\n", version.Version)
			return nil
		},
	}
}
