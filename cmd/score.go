package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/friction"
	"github.com/sells-group/prospect-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Crawl and friction-score business websites",
	Long: `Crawls business homepages, extracts friction heuristics (booking,
chat, forms, contact channels, mobile signals), and scores each site 0-100.
Higher scores mean more customer-facing friction, i.e. better outreach targets.

Examples:
  # Score a single site
  score --url https://apexroofing.com --name "Apex Roofing" --niche roofing

  # Score a batch from CSV (columns: name,url,niche,region)
  score --input prospects.csv

  # Score and persist to the configured store
  score --input prospects.csv --save`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("url", "", "single website URL to score")
	f.String("name", "", "business name (single mode)")
	f.String("niche", "", "service niche, e.g. roofing (single mode)")
	f.String("region", "", "region hint, e.g. Austin, TX (single mode)")
	f.String("input", "", "CSV file of prospects (columns: name,url,niche,region)")
	f.Bool("save", false, "persist scored businesses to the store")

	rootCmd.AddCommand(scoreCmd)
}

type prospect struct {
	Name   string
	URL    string
	Niche  string
	Region string
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rawURL, _ := cmd.Flags().GetString("url")
	inputPath, _ := cmd.Flags().GetString("input")
	save, _ := cmd.Flags().GetBool("save")

	var prospects []prospect
	switch {
	case rawURL != "":
		name, _ := cmd.Flags().GetString("name")
		niche, _ := cmd.Flags().GetString("niche")
		region, _ := cmd.Flags().GetString("region")
		prospects = []prospect{{Name: name, URL: rawURL, Niche: niche, Region: region}}
	case inputPath != "":
		var err error
		prospects, err = readProspectsCSV(inputPath)
		if err != nil {
			return err
		}
	default:
		return eris.New("score: either --url or --input is required")
	}

	log := zap.L().With(zap.String("command", "score"))
	log.Info("starting scoring", zap.Int("prospects", len(prospects)))

	businesses, err := scoreAll(ctx, prospects)
	if err != nil {
		return err
	}

	log.Info("scoring complete",
		zap.Int("scored", len(businesses)),
		zap.Int("failed", len(prospects)-len(businesses)),
	)

	printScoreTable(businesses)

	if save && len(businesses) > 0 {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.CreateRun(ctx, "score")
		if err != nil {
			return err
		}
		for _, b := range businesses {
			if err := st.SaveBusiness(ctx, runID, b); err != nil {
				return err
			}
		}
		if err := st.CompleteRun(ctx, runID, len(businesses)); err != nil {
			return err
		}
		fmt.Printf("Saved %d businesses (run %s)\n", len(businesses), runID)
	}

	return nil
}

// scoreAll crawls and scores prospects concurrently, preserving input
// order in the result. Individual crawl failures are logged and skipped.
func scoreAll(ctx context.Context, prospects []prospect) ([]model.Business, error) {
	fetcher := newFetcher()

	results := make([]*model.Business, len(prospects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Score.Workers)

	for i, p := range prospects {
		g.Go(func() error {
			h, err := fetcher.Crawl(ctx, p.URL)
			if err != nil {
				zap.L().Warn("crawl failed",
					zap.String("url", p.URL),
					zap.Error(err),
				)
				return nil
			}

			b := businessFromProspect(p, h)
			scored, err := friction.ScoreBusiness(b)
			if err != nil {
				return eris.Wrapf(err, "score: %s", p.URL)
			}

			results[i] = &scored
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	businesses := make([]model.Business, 0, len(results))
	for _, b := range results {
		if b != nil {
			businesses = append(businesses, *b)
		}
	}
	return businesses, nil
}

// businessFromProspect builds a Business from crawl heuristics, promoting
// the first extracted email and phone to the contact fields.
func businessFromProspect(p prospect, h model.HeuristicResult) model.Business {
	name := p.Name
	if name == "" {
		name = p.URL
	}
	b := model.Business{
		Name:       name,
		Domain:     hostOf(p.URL),
		Niche:      p.Niche,
		Region:     p.Region,
		ContactURL: h.ContactURL,
		Heuristics: h,
	}
	if len(h.Emails) > 0 {
		b.Email = h.Emails[0]
	}
	if len(h.Phones) > 0 {
		b.Phone = h.Phones[0]
	}
	return b
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func readProspectsCSV(path string) ([]prospect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "score: open %s", path)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "score: read %s", path)
	}
	if len(rows) < 2 {
		return nil, eris.Errorf("score: %s has no data rows", path)
	}

	var prospects []prospect
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 {
			continue
		}
		p := prospect{Name: strings.TrimSpace(row[0]), URL: strings.TrimSpace(row[1])}
		if len(row) > 2 {
			p.Niche = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			p.Region = strings.TrimSpace(row[3])
		}
		if p.URL != "" {
			prospects = append(prospects, p)
		}
	}
	return prospects, nil
}

func printScoreTable(businesses []model.Business) {
	if len(businesses) == 0 {
		fmt.Println("No results.")
		return
	}
	fmt.Printf("%-40s %-14s %5s %4s %-8s\n", "Name", "Niche", "Score", "Band", "Tier")
	fmt.Println(strings.Repeat("-", 76))
	for _, b := range businesses {
		name := b.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("%-40s %-14s %5d %4s %-8s\n", name, b.Niche, b.FrictionScore, b.Band, b.Tier)
	}
}
