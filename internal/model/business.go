package model

// Band is the letter grade bucketing a friction score for human scanning.
type Band string

const (
	BandA Band = "A"
	BandB Band = "B"
	BandC Band = "C"
	BandD Band = "D"
)

// Tier is the outreach-priority label derived from a band.
type Tier string

const (
	TierPriority Tier = "PRIORITY"
	TierGood     Tier = "GOOD"
	TierPass     Tier = "PASS"
	TierSkip     Tier = "SKIP"
)

// Business represents one crawled and scored small business. Created once
// per site, scored once, immutable thereafter; ranking only orders copies.
type Business struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
	Niche  string `json:"niche,omitempty"`
	Region string `json:"region,omitempty"`

	Email      string `json:"email,omitempty"`
	ContactURL string `json:"contact_url,omitempty"`
	Phone      string `json:"phone,omitempty"`

	Heuristics HeuristicResult `json:"heuristics"`

	FrictionScore int  `json:"friction_score"`
	Band          Band `json:"score_band"`
	Tier          Tier `json:"targeting_tier"`
}

// BandForScore maps a friction score to its band. Thresholds are
// right-inclusive lower bounds evaluated in descending order.
func BandForScore(score int) Band {
	switch {
	case score >= 80:
		return BandA
	case score >= 60:
		return BandB
	case score >= 40:
		return BandC
	default:
		return BandD
	}
}

// TierForBand maps a band to its targeting tier.
func TierForBand(band Band) Tier {
	switch band {
	case BandA:
		return TierPriority
	case BandB:
		return TierGood
	case BandC:
		return TierPass
	default:
		return TierSkip
	}
}

// Contactable reports whether the business has at least one reachable
// contact channel. Businesses without one are excluded from ranking.
func (b Business) Contactable() bool {
	return b.Email != "" || b.ContactURL != "" || b.Phone != ""
}
