package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/heuristics"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Fetch a business homepage and print extracted heuristics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fetcher := newFetcher()

		result, err := fetcher.Crawl(ctx, args[0])
		if err != nil {
			return err
		}

		zap.L().Info("crawl complete",
			zap.String("url", args[0]),
			zap.Int64("html_bytes", result.HTMLSizeBytes),
			zap.Bool("has_booking", result.HasBooking),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func newFetcher() *heuristics.Fetcher {
	return heuristics.NewFetcher(
		heuristics.WithTimeout(time.Duration(cfg.Crawl.TimeoutSecs)*time.Second),
		heuristics.WithMaxBodyBytes(cfg.Crawl.MaxBodyBytes),
		heuristics.WithUserAgent(cfg.Crawl.UserAgent),
	)
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}
