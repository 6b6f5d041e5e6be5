// Package main provides the seqrnn CLI: build a recurrent model from a YAML
// file or flags and run it one step at a time.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/seqrnn/internal/logger"
)

func main() {
	if err := execute(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

// execute runs the app and logs a failing command before returning its error.
func execute(ctx context.Context, args []string) error {
	err := newApp().Run(ctx, args)
	if err != nil {
		logger.Log.Error("command failed", "command", commandName(args), "err", err)
	}
	return err
}

func commandName(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "seqrnn",
		Usage: "Recurrent next-token model (embedding, GRU/LSTM, linear)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			versionCmd(),
			infoCmd(),
			stepCmd(),
		},
	}
}
