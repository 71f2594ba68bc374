// Package report renders human-readable markdown from ranking and
// resolution results.
package report

import (
	"fmt"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

// FormatRanking generates a markdown digest of ranked businesses.
func FormatRanking(businesses []model.Business) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Outreach Ranking: %d businesses\n\n", len(businesses))

	if len(businesses) == 0 {
		b.WriteString("No contactable businesses to rank.\n")
		return b.String()
	}

	// Tier summary.
	tiers := map[model.Tier]int{}
	for _, biz := range businesses {
		tiers[biz.Tier]++
	}
	b.WriteString("## Summary\n")
	for _, tier := range []model.Tier{model.TierPriority, model.TierGood, model.TierPass, model.TierSkip} {
		if n := tiers[tier]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", tier, n)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Ranked\n")
	b.WriteString("| # | Name | Niche | Score | Band | Tier | Contact |\n")
	b.WriteString("|---|------|-------|-------|------|------|--------|\n")
	for i, biz := range businesses {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s | %s |\n",
			i+1, biz.Name, biz.Niche, biz.FrictionScore, biz.Band, biz.Tier, contactChannel(biz))
	}

	return b.String()
}

func contactChannel(b model.Business) string {
	switch {
	case b.Email != "":
		return b.Email
	case b.ContactURL != "":
		return b.ContactURL
	default:
		return b.Phone
	}
}

// FormatAssessment generates a markdown report for one resolution assessment.
func FormatAssessment(a *resolve.Assessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Resolution: %s\n", a.Query.Name)
	fmt.Fprintf(&b, "Source: %s\n", a.Source)
	fmt.Fprintf(&b, "Candidates: %d\n\n", a.CandidateCount)

	if a.Selected == nil {
		b.WriteString("No candidates found; nothing to assess.\n")
		return b.String()
	}

	b.WriteString("## Selected Entity\n")
	fmt.Fprintf(&b, "- Place ID: %s\n", a.Selected.PlaceID)
	fmt.Fprintf(&b, "- Name: %s\n", a.Selected.Name)
	if a.Selected.FormattedAddress != "" {
		fmt.Fprintf(&b, "- Address: %s\n", a.Selected.FormattedAddress)
	}
	if a.Selected.Website != "" {
		fmt.Fprintf(&b, "- Website: %s\n", a.Selected.Website)
	}
	if a.Selected.UserRatingCount != nil {
		fmt.Fprintf(&b, "- Reviews: %d (rating %.1f)\n", *a.Selected.UserRatingCount, a.Selected.Rating)
	} else {
		b.WriteString("- Reviews: unknown\n")
	}
	b.WriteString("\n")

	b.WriteString("## Match\n")
	fmt.Fprintf(&b, "- Composite: %.1f\n", a.Match.Composite)
	fmt.Fprintf(&b, "- Name similarity: %.2f\n", a.Match.NameSimilarity)
	fmt.Fprintf(&b, "- Location match: %.2f\n", a.Match.LocationMatch)
	fmt.Fprintf(&b, "- Phone match: %t\n", a.Match.PhoneMatch)
	fmt.Fprintf(&b, "- Website match: %t\n\n", a.Match.WebsiteMatch)

	b.WriteString("## Collision\n")
	if !a.Collision.CollisionRisk {
		b.WriteString("No collision risk detected among sibling candidates.\n\n")
	} else {
		fmt.Fprintf(&b, "Collision risk: %d conflicting sibling(s).\n", len(a.Collision.Candidates))
		for _, c := range a.Collision.Candidates {
			fmt.Fprintf(&b, "- %s (%s) similarity %.2f\n", c.Name, c.Address, c.NameSimilarity)
		}
		if len(a.Collision.Suggestions) > 0 {
			b.WriteString("\nSuggested disambiguation queries (advisory only):\n")
			for _, s := range a.Collision.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Category\n")
	fmt.Fprintf(&b, "- Mismatch: %t (similarity %.2f)\n", a.Mismatch.Mismatch, a.Mismatch.Similarity)
	if len(a.Mismatch.DenylistHits) > 0 {
		fmt.Fprintf(&b, "- Denylist hits: %s\n", strings.Join(a.Mismatch.DenylistHits, ", "))
	}
	if a.Mismatch.SuspectedWrongCategory {
		b.WriteString("- Operator flagged this listing as suspected wrong category.\n")
	}
	fmt.Fprintf(&b, "- Note: %s\n\n", a.Mismatch.Note)

	b.WriteString("## Throttle Risk\n")
	if a.Throttle.ZeroReviews == nil {
		b.WriteString("- Zero reviews: unknown\n")
	} else {
		fmt.Fprintf(&b, "- Zero reviews: %t\n", *a.Throttle.ZeroReviews)
	}
	fmt.Fprintf(&b, "- Collision risk: %t\n", a.Throttle.CollisionRisk)
	fmt.Fprintf(&b, "- Category mismatch: %t\n", a.Throttle.CategoryMismatch)
	b.WriteString("- Service-area-only status: unknown (not observable from search results)\n")
	fmt.Fprintf(&b, "- Severity: %s\n", a.Throttle.Severity)

	return b.String()
}
