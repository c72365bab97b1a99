package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/parley/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("parley %s\n", version.String())
			if info := version.Resolve(); info.BuildTime != "" {
				fmt.Printf("built %s\n", info.BuildTime)
			}
			return nil
		},
	}
}
