// Package main provides the Dealflow API server.
package main

import (
	"context"
	"os"

	"github.com/dealflow/dealflow/pkg/cmd"
	"github.com/dealflow/dealflow/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "dealflow-api",
		Usage:                 "Run automations over HTTP",
		EnableShellCompletion: true,
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
		}, cmd.ExecutorFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), command.String("log-format"))

			logger.InfoContext(ctx, "Initializing Dealflow API")

			runtime, err := cmd.NewRuntime(ctx, command, "dealflow-api", logger)
			if err != nil {
				return err
			}
			defer runtime.Close(ctx)

			api := NewAPI(logger, runtime)

			err = api.Start(int(command.Int("port")))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return err
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		logger.Error("Dealflow API stopped", "error", err)
		os.Exit(1)
	}
}
