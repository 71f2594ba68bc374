package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/report"
	"github.com/sells-group/prospect-cli/internal/resolve"
	"github.com/sells-group/prospect-cli/pkg/places"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a business against Places listings",
	Long: `Searches Places for a business profile, picks the best-matching
listing, and assesses name collisions, category mismatch, and listing
throttle risk.

Examples:
  # Resolve via the Places API
  resolve --name "Apex Roofing" --location "Austin TX"

  # Run the assessment offline from operator-provided data
  resolve --name "Apex Roofing" --location "Austin TX" --manual

  # JSON output, persisted to the store
  resolve --name "Apex Roofing" --format json --save`,
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.String("name", "", "business name (required)")
	f.String("location", "", "location hint, e.g. \"Austin TX\"")
	f.String("phone", "", "known phone number")
	f.String("website", "", "known website URL")
	f.Bool("manual", false, "skip the API; assess operator-provided data only")
	f.String("categories", "", "comma-separated expected categories (overrides config)")
	f.Bool("suspect-wrong-category", false, "operator suspects the listing category is wrong")
	f.String("format", "markdown", "output format: markdown or json")
	f.Bool("save", false, "persist the assessment to the store")
	_ = resolveCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name, _ := cmd.Flags().GetString("name")
	location, _ := cmd.Flags().GetString("location")
	phone, _ := cmd.Flags().GetString("phone")
	website, _ := cmd.Flags().GetString("website")
	manual, _ := cmd.Flags().GetBool("manual")
	categoriesFlag, _ := cmd.Flags().GetString("categories")
	suspect, _ := cmd.Flags().GetBool("suspect-wrong-category")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if format != "markdown" && format != "json" {
		return eris.Errorf("resolve: --format must be markdown or json (got %q)", format)
	}

	categories := cfg.Resolve.ExpectedCategories
	if categoriesFlag != "" {
		categories = splitAndTrim(categoriesFlag)
	}

	var src resolve.Source
	if manual {
		src = resolve.ManualHint{}
	} else {
		if cfg.Places.Key == "" {
			return eris.New("resolve: places API key is required (PROSPECT_PLACES_KEY), or use --manual")
		}
		client := places.NewClient(cfg.Places.Key, places.WithBaseURL(cfg.Places.BaseURL))
		src = resolve.NewAPIBacked(client, cfg.Places.RateLimit)
	}

	q := resolve.Query{
		Name:         name,
		LocationHint: location,
		Phone:        phone,
		Website:      website,
	}

	assessment, err := resolve.Resolve(ctx, src, q, categories, suspect)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(assessment); err != nil {
			return eris.Wrap(err, "resolve: encode assessment")
		}
	default:
		fmt.Print(report.FormatAssessment(assessment))
	}

	if save {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.SaveAssessment(ctx, assessment)
		if err != nil {
			return err
		}
		fmt.Printf("Assessment saved (%s)\n", id)
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
