package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/seqrnn/internal/config"
	"github.com/born-ml/seqrnn/internal/seqmodel"
)

type infoResult struct {
	Model      seqmodel.Config          `json:"model"`
	Parameters []seqmodel.ParameterInfo `json:"parameters"`
	Total      int                      `json:"total_parameters"`
}

func infoCmd() *cli.Command {
	opts := &modelOptions{}

	return &cli.Command{
		Name:  "info",
		Usage: "Print the resolved configuration and the parameter table",
		Flags: opts.flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			model, err := buildModel(cfg)
			if err != nil {
				return err
			}

			res := infoResult{
				Model:      model.Config(),
				Parameters: model.Summary(),
				Total:      model.NumParameters(),
			}
			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.Root().Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printInfo(cmd, cfg, res)
		},
	}
}

func printInfo(cmd *cli.Command, cfg config.File, res infoResult) error {
	w := cmd.Root().Writer
	yml, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", yml); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSHAPE\tCOUNT")
	for _, p := range res.Parameters {
		_, _ = fmt.Fprintf(tw, "%s\t%v\t%d\n", p.Name, p.Shape, p.Count)
	}
	_, _ = fmt.Fprintf(tw, "total\t\t%d\n", res.Total)
	return tw.Flush()
}
