package resolve

import (
	"fmt"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// collisionNameThreshold is the minimum name similarity for a sibling
// candidate to count as a potential collision.
const collisionNameThreshold = 0.55

// DetectCollisions checks every candidate other than the selected one for
// name/brand collision risk. A sibling qualifies when its name is close
// to the input business name and it either sits in a different state
// than the selected entity or carries a different domain than the
// selected entity or the input website. Domain comparisons apply only
// when both sides are non-empty.
func DetectCollisions(candidates []model.Candidate, selected int, businessName, website string) model.CollisionReport {
	var report model.CollisionReport
	if selected < 0 || selected >= len(candidates) {
		return report
	}

	sel := candidates[selected]
	selState := trailingStateToken(sel.FormattedAddress)
	selDomain := registrableDomain(sel.Website)
	inputDomain := registrableDomain(website)

	for i, c := range candidates {
		if i == selected {
			continue
		}
		sim := NameSimilarity(c.Name, businessName)
		if sim < collisionNameThreshold {
			continue
		}

		risk := false
		if st := trailingStateToken(c.FormattedAddress); st != "" && selState != "" && st != selState {
			risk = true
		}
		if cd := registrableDomain(c.Website); cd != "" {
			if selDomain != "" && cd != selDomain {
				risk = true
			}
			if inputDomain != "" && cd != inputDomain {
				risk = true
			}
		}
		if !risk {
			continue
		}

		report.Candidates = append(report.Candidates, model.CollisionCandidate{
			PlaceID:        c.PlaceID,
			Name:           c.Name,
			Address:        c.FormattedAddress,
			Website:        c.Website,
			NameSimilarity: sim,
		})
	}

	if len(report.Candidates) > 0 {
		report.CollisionRisk = true
		report.Suggestions = disambiguationSuggestions(businessName, sel)
	}
	return report
}

// disambiguationSuggestions proposes name variants with location
// qualifiers appended. Advisory text for the operator, never applied
// automatically.
func disambiguationSuggestions(businessName string, selected model.Candidate) []string {
	if businessName == "" {
		return nil
	}

	state := trailingStateToken(selected.FormattedAddress)
	city := cityBeforeState(selected.FormattedAddress, state)

	var suggestions []string
	if city != "" {
		suggestions = append(suggestions, fmt.Sprintf("%s %s", businessName, city))
	}
	if city != "" && state != "" {
		suggestions = append(suggestions, fmt.Sprintf("%s %s %s", businessName, city, state))
	}
	if city == "" && state != "" {
		suggestions = append(suggestions, fmt.Sprintf("%s %s", businessName, state))
	}
	return suggestions
}

// trailingStateToken scans a formatted address from the end for a
// two-letter uppercase state code, skipping country markers and zip
// codes. Returns "" when no such token exists.
func trailingStateToken(address string) string {
	fields := strings.FieldsFunc(address, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for i := len(fields) - 1; i >= 0; i-- {
		tok := fields[i]
		if tok == "USA" || tok == "US" {
			continue
		}
		if isDigits(tok) {
			continue
		}
		if len(tok) == 2 && tok == strings.ToUpper(tok) && isAlpha(tok) {
			return tok
		}
	}
	return ""
}

// cityBeforeState returns the address segment immediately preceding the
// one that holds the state token.
func cityBeforeState(address, state string) string {
	if state == "" {
		return ""
	}
	segments := strings.Split(address, ",")
	for i, seg := range segments {
		for _, tok := range strings.Fields(seg) {
			if tok == state && i > 0 {
				return strings.TrimSpace(segments[i-1])
			}
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return s != ""
}
