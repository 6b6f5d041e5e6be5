package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/seqrnn/internal/backend/cpu"
	"github.com/born-ml/seqrnn/internal/logger"
	"github.com/born-ml/seqrnn/internal/tensor"
)

type stepResult struct {
	Variant      string      `json:"variant"`
	Tokens       []int32     `json:"tokens"`
	LogitsShape  []int       `json:"logits_shape"`
	HiddenShapes [][]int     `json:"hidden_shapes"`
	Argmax       []int       `json:"argmax"`
	Logits       [][]float32 `json:"logits,omitempty"`
}

func stepCmd() *cli.Command {
	opts := &modelOptions{}
	var (
		tokens     string
		showLogits bool
	)

	flags := append(opts.flags(),
		&cli.StringFlag{
			Name:        "tokens",
			Aliases:     []string{"t"},
			Usage:       "comma separated token ids, one per sequence in the batch",
			Value:       "0",
			Destination: &tokens,
		},
		&cli.BoolFlag{Name: "logits", Usage: "include the raw logits in the output", Destination: &showLogits},
	)

	return &cli.Command{
		Name:  "step",
		Usage: "Run one forward step from a zero hidden state",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			ids, err := parseTokens(tokens)
			if err != nil {
				return err
			}
			model, err := buildModel(cfg)
			if err != nil {
				return err
			}

			backend := model.Backend()
			hidden, err := model.InitHidden(len(ids), backend)
			if err != nil {
				return err
			}
			input, err := tensor.FromSlice(ids, tensor.Shape{len(ids)}, backend)
			if err != nil {
				return err
			}

			start := time.Now()
			logits, next, err := model.Forward(input, hidden)
			if err != nil {
				return err
			}
			logger.Log.Debug("forward step", "batch", len(ids), "elapsed", time.Since(start))

			res := stepResult{
				Variant:     model.Variant().String(),
				Tokens:      ids,
				LogitsShape: logits.Shape().Clone(),
				Argmax:      argmaxRows(logits),
			}
			for _, h := range next.Tensors() {
				res.HiddenShapes = append(res.HiddenShapes, h.Shape().Clone())
			}
			if showLogits {
				res.Logits = rows(logits)
			}

			w := cmd.Root().Writer
			if opts.jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printStep(w, res)
		},
	}
}

// parseTokens accepts ids separated by commas and/or whitespace.
func parseTokens(s string) ([]int32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no token ids in %q", s)
	}
	ids := make([]int32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		ids[i] = int32(v)
	}
	return ids, nil
}

func rows(logits *tensor.Tensor[float32, *cpu.CPUBackend]) [][]float32 {
	shape := logits.Shape()
	data := logits.Data()
	out := make([][]float32, shape[0])
	for i := range out {
		out[i] = append([]float32(nil), data[i*shape[1]:(i+1)*shape[1]]...)
	}
	return out
}

// argmaxRows returns the index of the largest logit in each row. Ties go to
// the lowest index.
func argmaxRows(logits *tensor.Tensor[float32, *cpu.CPUBackend]) []int {
	out := make([]int, 0, logits.Shape()[0])
	for _, row := range rows(logits) {
		best := 0
		for j, v := range row {
			if v > row[best] {
				best = j
			}
		}
		out = append(out, best)
	}
	return out
}

func printStep(w io.Writer, res stepResult) error {
	_, err := fmt.Fprintf(w, "variant: %s\ntokens:  %v\nlogits:  %v\nhidden:  %v\nargmax:  %v\n",
		res.Variant, res.Tokens, res.LogitsShape, res.HiddenShapes, res.Argmax)
	if err != nil {
		return err
	}
	for i, row := range res.Logits {
		if _, err := fmt.Fprintf(w, "[%d] %v\n", i, row); err != nil {
			return err
		}
	}
	return nil
}
