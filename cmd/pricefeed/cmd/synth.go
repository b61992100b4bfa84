package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"pricebatch/pkg/feed"
)

func newSynthCmd(root *rootOptions) *cobra.Command {
	cfg := feed.SynthConfig{}
	var start string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate random batches and push them concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != "" {
				ts, err := time.Parse(time.RFC3339Nano, start)
				if err != nil {
					return err
				}
				cfg.Start = ts
			}
			plans, err := feed.Synthesize(cfg)
			if err != nil {
				return err
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			sum := feed.NewRunner(client, root.concurrency).Run(cmd.Context(), plans)
			return printSummary(cmd.OutOrStdout(), sum)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Batches, "batches", 5, "number of batches")
	flags.IntVar(&cfg.PricesPerBatch, "prices", 1000, "prices per batch")
	flags.Int64Var(&cfg.MinID, "min-id", 0, "lowest instrument id (inclusive)")
	flags.Int64Var(&cfg.MaxID, "max-id", 1000, "highest instrument id (exclusive)")
	flags.StringVar(&start, "start", "", "asOf of the first price, RFC3339 (default now)")
	flags.DurationVar(&cfg.Step, "step", time.Millisecond, "asOf increment between prices")
	flags.IntVar(&cfg.Chunk, "chunk", 250, "prices per upload")
	flags.Float64Var(&cfg.Discard, "discard", 0, "fraction of batches to discard instead of commit")
	flags.Uint64Var(&cfg.Seed, "seed", 1, "random seed")
	return cmd
}
