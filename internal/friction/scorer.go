// Package friction converts raw website presence signals into a 0-100
// opportunity score used to prioritize outreach. Higher means more
// obstacles for a prospective customer trying to contact the business.
package friction

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// poorMobileHTMLBytes is the page-weight cutoff for the poor_mobile rule (1.2 MiB).
const poorMobileHTMLBytes = 1258291

// ScoringFactors records which rules fired during a single scoring call.
// Produced fresh on every call, never mutated afterward.
type ScoringFactors struct {
	NoBooking             bool `json:"no_booking"`
	LongForm              bool `json:"long_form"`
	NoPhoneLink           bool `json:"no_phone_link"`
	NoEmail               bool `json:"no_email"`
	NoChat                bool `json:"no_chat"`
	NoInstantQuote        bool `json:"no_instant_quote"`
	NoFileUpload          bool `json:"no_file_upload"`
	PoorMobile            bool `json:"poor_mobile"`
	HasOnlineBooking      bool `json:"has_online_booking"`
	HasChatWidget         bool `json:"has_chat_widget"`
	HasInstantQuoteWidget bool `json:"has_instant_quote_widget"`
}

// Result is the outcome of scoring one HeuristicResult.
type Result struct {
	Score   int            `json:"score"`
	Factors ScoringFactors `json:"factors"`
	Notes   []string       `json:"notes"`
}

// rule is one row of the scoring table: a condition, a point delta, the
// note strings it contributes, and the factor flag it sets. Rules are
// evaluated in declaration order so note output is reproducible.
type rule struct {
	applies func(model.HeuristicResult) bool
	delta   int
	notes   func(model.HeuristicResult) []string
	mark    func(*ScoringFactors)
}

func staticNote(note string) func(model.HeuristicResult) []string {
	return func(model.HeuristicResult) []string { return []string{note} }
}

var rules = []rule{
	{
		applies: func(h model.HeuristicResult) bool { return !h.HasBooking },
		delta:   25,
		notes:   staticNote("no_booking"),
		mark:    func(f *ScoringFactors) { f.NoBooking = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return h.FormInputs > 6 || h.FormRequired > 3 },
		delta:   20,
		notes: func(h model.HeuristicResult) []string {
			notes := []string{fmt.Sprintf("form_%d_inputs", h.FormInputs)}
			if h.FormRequired > 3 {
				notes = append(notes, fmt.Sprintf("%d_required_fields", h.FormRequired))
			}
			return notes
		},
		mark: func(f *ScoringFactors) { f.LongForm = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return len(h.Phones) == 0 },
		delta:   10,
		notes:   staticNote("no_phone_link"),
		mark:    func(f *ScoringFactors) { f.NoPhoneLink = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return len(h.Emails) == 0 },
		delta:   10,
		notes:   staticNote("no_email"),
		mark:    func(f *ScoringFactors) { f.NoEmail = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return !h.HasChat },
		delta:   10,
		notes:   staticNote("no_chat"),
		mark:    func(f *ScoringFactors) { f.NoChat = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return !h.HasInstantQuote },
		delta:   25,
		notes:   staticNote("no_instant_quote"),
		mark:    func(f *ScoringFactors) { f.NoInstantQuote = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return !h.HasFileUpload },
		delta:   10,
		notes:   staticNote("no_file_upload"),
		mark:    func(f *ScoringFactors) { f.NoFileUpload = true },
	},
	{
		applies: func(h model.HeuristicResult) bool {
			return !h.HasViewportMeta || h.HTMLSizeBytes > poorMobileHTMLBytes
		},
		delta: 5,
		notes: func(h model.HeuristicResult) []string {
			var notes []string
			if !h.HasViewportMeta {
				notes = append(notes, "no_meta_viewport")
			}
			if h.HTMLSizeBytes > poorMobileHTMLBytes {
				notes = append(notes, fmt.Sprintf("html_%dkb", h.HTMLSizeBytes/1024))
			}
			return notes
		},
		mark: func(f *ScoringFactors) { f.PoorMobile = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return h.HasBooking },
		delta:   -20,
		notes: func(h model.HeuristicResult) []string {
			return []string{"booking_" + strings.Join(h.BookingProviders, "_")}
		},
		mark: func(f *ScoringFactors) { f.HasOnlineBooking = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return h.HasChat },
		delta:   -10,
		notes: func(h model.HeuristicResult) []string {
			return []string{"chat_" + strings.Join(h.ChatProviders, "_")}
		},
		mark: func(f *ScoringFactors) { f.HasChatWidget = true },
	},
	{
		applies: func(h model.HeuristicResult) bool { return h.HasInstantQuote },
		delta:   -20,
		notes: func(h model.HeuristicResult) []string {
			if len(h.QuoteProviders) == 0 {
				return []string{"instant_quote"}
			}
			return []string{"instant_" + strings.Join(h.QuoteProviders, "_")}
		},
		mark: func(f *ScoringFactors) { f.HasInstantQuoteWidget = true },
	},
}

// Score evaluates the rule table against one HeuristicResult. Pure and
// deterministic: identical input yields identical score, factors, and
// note order. Negative counts or byte sizes are caller bugs and fail
// fast instead of being silently clamped.
func Score(h model.HeuristicResult) (Result, error) {
	if h.FormInputs < 0 || h.FormRequired < 0 || h.HTMLSizeBytes < 0 {
		return Result{}, eris.Errorf(
			"friction: heuristic fields out of domain (inputs=%d required=%d html_bytes=%d)",
			h.FormInputs, h.FormRequired, h.HTMLSizeBytes,
		)
	}

	var res Result
	for _, r := range rules {
		if !r.applies(h) {
			continue
		}
		res.Score += r.delta
		res.Notes = append(res.Notes, r.notes(h)...)
		r.mark(&res.Factors)
	}

	if res.Score > 100 {
		res.Score = 100
	}
	if res.Score < 0 {
		res.Score = 0
	}
	return res, nil
}

// ScoreBusiness scores b's heuristics and returns a copy with the
// friction score, band, and targeting tier populated.
func ScoreBusiness(b model.Business) (model.Business, error) {
	res, err := Score(b.Heuristics)
	if err != nil {
		return model.Business{}, err
	}
	b.FrictionScore = res.Score
	b.Band = model.BandForScore(res.Score)
	b.Tier = model.TierForBand(b.Band)
	return b, nil
}
