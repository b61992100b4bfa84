package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/pkg/confkit"
	"pricebatch/pkg/feed"
)

type rootOptions struct {
	server      string
	codec       string
	concurrency int
	timeout     time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pricefeed",
		Short: "Producer tool for the price batch service",
		Long: `pricefeed opens batches on a running price batch server, uploads prices
in chunks and commits or discards each batch.

Feeds come from a YAML file (load) or from the synthetic generator (synth).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			confkit.LoadDotenvOnce()
			if !opts.verbose {
				logx.SetLevel(logx.ErrorLevel)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", "http://127.0.0.1:8888", "price batch server base URL")
	flags.StringVar(&opts.codec, "codec", "json", "upload encoding: json or msgpack")
	flags.IntVar(&opts.concurrency, "concurrency", 4, "batches in flight at once")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request HTTP timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every batch")

	cmd.AddCommand(
		newLoadCmd(opts),
		newSynthCmd(opts),
		newGetCmd(opts),
	)
	return cmd
}

// Execute runs the pricefeed command tree.
func Execute() error {
	return newRootCmd().Execute()
}

func (o *rootOptions) client() (*feed.Client, error) {
	codec, err := feed.CodecByName(o.codec)
	if err != nil {
		return nil, err
	}
	return feed.NewClient(
		feed.WithBaseURL(o.server),
		feed.WithCodec(codec),
		feed.WithHTTPClient(&http.Client{Timeout: o.timeout}),
	), nil
}

func printSummary(w io.Writer, sum feed.Summary) error {
	for _, res := range sum.Results {
		if res.Err != nil {
			fmt.Fprintf(w, "FAIL %-16s batch=%d uploaded=%d err=%v\n", res.Plan, res.BatchID, res.Uploaded, res.Err)
			continue
		}
		fmt.Fprintf(w, "OK   %-16s batch=%d uploaded=%d chunks=%d %s\n", res.Plan, res.BatchID, res.Uploaded, res.Chunks, res.Closed)
	}
	fmt.Fprintf(w, "committed=%d discarded=%d failed=%d prices=%d\n", sum.Committed, sum.Discarded, sum.Failed, sum.Prices)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d batches failed", sum.Failed, len(sum.Results))
	}
	return nil
}
