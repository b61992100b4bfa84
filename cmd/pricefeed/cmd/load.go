package cmd

import (
	"github.com/spf13/cobra"

	"pricebatch/pkg/confkit"
	"pricebatch/pkg/feed"
)

func newLoadCmd(root *rootOptions) *cobra.Command {
	var chunk int

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Upload the batches described in a YAML feed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := feed.LoadFile(confkit.ResolvePath("", args[0]))
			if err != nil {
				return err
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			sum := feed.NewRunner(client, root.concurrency).Run(cmd.Context(), f.Plans(chunk))
			return printSummary(cmd.OutOrStdout(), sum)
		},
	}

	cmd.Flags().IntVar(&chunk, "chunk", 1000, "default prices per upload for batches without their own chunk size")
	return cmd
}
