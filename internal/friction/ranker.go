package friction

import (
	"sort"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// nichePriority orders trade niches for tie-breaking between businesses
// with an equal friction score. Lower means earlier in outreach.
var nichePriority = map[string]int{
	"roofing":     1,
	"hvac":        2,
	"remodeling":  3,
	"landscaping": 4,
	"tree":        5,
	"pest":        6,
}

// defaultNichePriority sorts unknown niches after every known one.
const defaultNichePriority = 999

func nichePriorityOf(niche string) int {
	if p, ok := nichePriority[strings.ToLower(strings.TrimSpace(niche))]; ok {
		return p
	}
	return defaultNichePriority
}

// Rank filters and orders businesses for outreach. Businesses with no
// contact channel at all are dropped regardless of score. The rest are
// sorted by friction score descending, then niche priority ascending;
// the sort is stable so equal (score, niche) pairs keep their input
// order. The input slice is never mutated.
func Rank(businesses []model.Business) []model.Business {
	ranked := make([]model.Business, 0, len(businesses))
	for _, b := range businesses {
		if !b.Contactable() {
			continue
		}
		ranked = append(ranked, b)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FrictionScore != ranked[j].FrictionScore {
			return ranked[i].FrictionScore > ranked[j].FrictionScore
		}
		return nichePriorityOf(ranked[i].Niche) < nichePriorityOf(ranked[j].Niche)
	})

	return ranked
}
