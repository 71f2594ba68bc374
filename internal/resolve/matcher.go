// Package resolve matches a business profile against Places search
// candidates, flags name collisions and category mismatches, and rolls
// the signals up into a single throttle-risk severity.
package resolve

import (
	"net/url"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Signal weights for the composite match score. The composite is used
// only to rank candidates relative to each other, so it has no upper
// clamp (max attainable is ~117).
const (
	nameWeight     = 35
	locationWeight = 20
	phoneWeight    = 35
	websiteWeight  = 25
	reviewBonus    = 2

	// minLocationTokens floors the location-match denominator so very
	// short hints cannot reach a perfect score.
	minLocationTokens = 4
)

// MatchCandidate scores one candidate's similarity to the input business
// profile. The four signals are independent and combined additively so
// each can be audited on its own.
func MatchCandidate(c model.Candidate, businessName, locationHint, phone, website string) model.MatchScore {
	ms := model.MatchScore{
		NameSimilarity: NameSimilarity(c.Name, businessName),
		LocationMatch:  locationMatch(c.FormattedAddress, locationHint),
		PhoneMatch:     phoneMatch(c.Phone, phone),
		WebsiteMatch:   websiteMatch(c.Website, website),
		HasReviews:     c.UserRatingCount != nil && *c.UserRatingCount > 0,
	}

	ms.Composite = nameWeight*ms.NameSimilarity + locationWeight*ms.LocationMatch
	if ms.PhoneMatch {
		ms.Composite += phoneWeight
	}
	if ms.WebsiteMatch {
		ms.Composite += websiteWeight
	}
	if ms.HasReviews {
		ms.Composite += reviewBonus
	}
	return ms
}

// SelectBest returns the index and score of the candidate with the
// highest composite match. Ties keep the first-encountered candidate.
// Returns -1 for an empty candidate list.
func SelectBest(candidates []model.Candidate, businessName, locationHint, phone, website string) (int, model.MatchScore) {
	best := -1
	var bestScore model.MatchScore
	for i, c := range candidates {
		ms := MatchCandidate(c, businessName, locationHint, phone, website)
		if best == -1 || ms.Composite > bestScore.Composite {
			best = i
			bestScore = ms
		}
	}
	return best, bestScore
}

// NameSimilarity computes Jaccard similarity over normalized word-token
// sets. Two empty names are considered identical; exactly one empty name
// matches nothing.
func NameSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}

	union := len(setA)
	for w := range setB {
		if !setA[w] {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

// locationMatch returns the fraction of location-hint tokens (length >=2)
// found as substrings of the normalized candidate address. The
// denominator is floored at minLocationTokens and the result capped at 1.
func locationMatch(address, hint string) float64 {
	addr := normalizeText(address)
	if addr == "" {
		return 0.0
	}

	var tokens []string
	for _, tok := range strings.Fields(normalizeText(hint)) {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return 0.0
	}

	matched := 0
	for _, tok := range tokens {
		if strings.Contains(addr, tok) {
			matched++
		}
	}

	denom := len(tokens)
	if denom < minLocationTokens {
		denom = minLocationTokens
	}
	frac := float64(matched) / float64(denom)
	if frac > 1.0 {
		frac = 1.0
	}
	return frac
}

// phoneMatch compares the last 10 digits of each number. Both sides must
// be non-empty after digit extraction.
func phoneMatch(a, b string) bool {
	da := lastDigits(a, 10)
	db := lastDigits(b, 10)
	return da != "" && db != "" && da == db
}

// websiteMatch compares naive registrable domains. Both sides must be
// non-empty.
func websiteMatch(a, b string) bool {
	da := registrableDomain(a)
	db := registrableDomain(b)
	return da != "" && db != "" && da == db
}

// tokenSet lowercases s, maps punctuation to whitespace, and returns the
// set of remaining word tokens.
func tokenSet(s string) map[string]bool {
	words := strings.Fields(normalizeText(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// normalizeText lowercases s and replaces every non-alphanumeric rune
// with a space.
func normalizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, s)
}

// lastDigits extracts the digits of s and returns at most the last n.
func lastDigits(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > n {
		digits = digits[len(digits)-n:]
	}
	return digits
}

// registrableDomain reduces a URL to its last two DNS labels. This is a
// known-lossy approximation: multi-part public suffixes like .co.uk
// collapse to the suffix pair. Kept as-is because match behavior depends
// on it.
func registrableDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}
