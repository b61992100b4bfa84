package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newGetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID...",
		Short: "Print the published price for each instrument id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("bad id %q: %w", arg, err)
				}
				p, err := client.GetPrice(cmd.Context(), id)
				if err != nil {
					fmt.Fprintf(out, "%d\t-\t%v\n", id, err)
					continue
				}
				fmt.Fprintf(out, "%d\t%s\t%s\n", p.ID, p.AsOf.Format(time.RFC3339Nano), p.Payload)
			}
			return nil
		},
	}
}
