package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/export"
	"github.com/sells-group/prospect-cli/internal/friction"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/report"
	"github.com/sells-group/prospect-cli/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored businesses for outreach",
	Long: `Loads scored businesses from the store, drops those without a
contact channel, and orders the rest by friction score (niche priority
breaks ties).

Examples:
  # Rank everything in the store
  rank

  # Rank only band A roofing prospects, export to XLSX
  rank --niche roofing --band A --format xlsx --output ranked.xlsx`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.String("niche", "", "filter by niche")
	f.String("band", "", "filter by score band (A-D)")
	f.Int("min-score", 0, "minimum friction score")
	f.Int("limit", 0, "maximum businesses to load (default 100)")
	f.String("format", "table", "output format: table, markdown, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	niche, _ := cmd.Flags().GetString("niche")
	band, _ := cmd.Flags().GetString("band")
	minScore, _ := cmd.Flags().GetInt("min-score")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	businesses, err := st.ListBusinesses(ctx, store.BusinessFilter{
		Niche:    niche,
		Band:     model.Band(band),
		MinScore: minScore,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	ranked := friction.Rank(businesses)

	zap.L().Info("ranking complete",
		zap.Int("loaded", len(businesses)),
		zap.Int("ranked", len(ranked)),
	)

	switch format {
	case "table":
		printScoreTable(ranked)
		return nil
	case "markdown":
		return writeOutput(outputPath, report.FormatRanking(ranked))
	case "csv":
		if outputPath == "" {
			return export.WriteCSV(os.Stdout, ranked)
		}
		return export.WriteCSVFile(outputPath, ranked)
	case "xlsx":
		if outputPath == "" {
			return eris.New("rank: --output is required for xlsx format")
		}
		return export.WriteXLSX(outputPath, ranked)
	default:
		return eris.Errorf("rank: unsupported format %q", format)
	}
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	return eris.Wrapf(os.WriteFile(path, []byte(content), 0o644), "write %s", path)
}
