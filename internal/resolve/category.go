package resolve

import (
	"fmt"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// categorySimilarityThreshold is the minimum Jaccard similarity between
// candidate category tokens and expected-category tokens before the
// listing is flagged as a possible mismatch.
const categorySimilarityThreshold = 0.12

// categoryDenylist holds tokens from clearly unrelated trades and
// storefront types. Any hit flags a mismatch regardless of similarity.
var categoryDenylist = []string{
	"restaurant",
	"cafe",
	"bar",
	"bakery",
	"grocery",
	"hotel",
	"motel",
	"church",
	"school",
	"museum",
	"salon",
	"spa",
	"dentist",
	"doctor",
	"attorney",
	"bank",
	"pharmacy",
	"gas",
}

// AnalyzeCategories compares a candidate's category tags against the
// expected service categories. Tags are split on underscores into
// sub-tokens before comparison. The result is a proxy signal derived
// from listing metadata, not ground truth about what the business does.
func AnalyzeCategories(candidateTypes, expectedCategories []string, suspectedWrongCategory bool) model.MismatchReport {
	tagTokens := categoryTokens(candidateTypes)
	expTokens := categoryTokens(expectedCategories)

	report := model.MismatchReport{
		SuspectedWrongCategory: suspectedWrongCategory,
	}

	for _, deny := range categoryDenylist {
		if tagTokens[deny] {
			report.DenylistHits = append(report.DenylistHits, deny)
		}
	}

	report.Similarity = setJaccard(tagTokens, expTokens)

	switch {
	case len(report.DenylistHits) > 0:
		report.Mismatch = true
		report.Note = fmt.Sprintf(
			"category tags include unrelated-trade keywords (%s); proxy signal only, verify before acting",
			strings.Join(report.DenylistHits, ", "),
		)
	case len(tagTokens) > 0 && report.Similarity < categorySimilarityThreshold:
		report.Mismatch = true
		report.Note = fmt.Sprintf(
			"category tags overlap expected categories at %.2f (< %.2f); proxy signal only, verify before acting",
			report.Similarity, categorySimilarityThreshold,
		)
	case len(tagTokens) == 0:
		report.Note = "no category tags reported by the listing; mismatch cannot be assessed"
	default:
		report.Note = "category tags align with expected categories; proxy signal only"
	}

	return report
}

// categoryTokens splits each tag on underscores and non-alphanumeric
// separators and returns the lowercased token set.
func categoryTokens(tags []string) map[string]bool {
	set := make(map[string]bool)
	for _, tag := range tags {
		for _, tok := range strings.Fields(normalizeText(strings.ReplaceAll(tag, "_", " "))) {
			set[tok] = true
		}
	}
	return set
}

// setJaccard is Jaccard similarity over two token sets. An empty side
// yields 0 (no overlap can be asserted).
func setJaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a)
	for tok := range b {
		if !a[tok] {
			union++
		}
	}
	return float64(intersection) / float64(union)
}
