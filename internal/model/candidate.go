package model

// Candidate is one result from a Places text search. Every field except
// PlaceID may be absent because the upstream API omits fields it has no
// data for.
type Candidate struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Types            []string `json:"types,omitempty"`
	BusinessStatus   string   `json:"business_status,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingCount  *int     `json:"user_rating_count,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Website          string   `json:"website,omitempty"`
}

// MatchScore is the per-candidate similarity breakdown against an input
// business profile. Recomputed per run, never persisted on its own; the
// composite is meaningful only for ranking candidates against each other.
type MatchScore struct {
	Composite      float64 `json:"composite"`
	NameSimilarity float64 `json:"name_similarity"`
	LocationMatch  float64 `json:"location_match"`
	PhoneMatch     bool    `json:"phone_match"`
	WebsiteMatch   bool    `json:"website_match"`
	HasReviews     bool    `json:"has_reviews"`
}

// CollisionCandidate is a sibling candidate flagged as a possible
// name/brand collision with the selected entity.
type CollisionCandidate struct {
	PlaceID        string  `json:"place_id"`
	Name           string  `json:"name"`
	Address        string  `json:"address,omitempty"`
	Website        string  `json:"website,omitempty"`
	NameSimilarity float64 `json:"name_similarity"`
}

// CollisionReport flags name/brand collision risk among sibling candidates.
// Suggestions are advisory disambiguation text only, never auto-applied.
type CollisionReport struct {
	CollisionRisk bool                 `json:"collision_risk"`
	Candidates    []CollisionCandidate `json:"collision_candidates,omitempty"`
	Suggestions   []string             `json:"suggestions,omitempty"`
}

// MismatchReport compares a candidate's category tags against the expected
// service categories. A proxy signal, not ground truth.
type MismatchReport struct {
	Mismatch               bool     `json:"mismatch"`
	Similarity             float64  `json:"similarity"`
	DenylistHits           []string `json:"denylist_hits,omitempty"`
	SuspectedWrongCategory bool     `json:"suspected_wrong_category"`
	Note                   string   `json:"note"`
}

// Severity is the ordinal risk that a listing's visibility is suppressed.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// ThrottleAssessment aggregates resolution risk signals into one ordinal
// severity. ZeroReviews is nil when the review count is unknown.
// ServiceAreaOnlyUnknown is always true: whether the listing is a
// service-area business cannot be determined from search results, so it
// is surfaced as a standing blind spot rather than evidence.
type ThrottleAssessment struct {
	ZeroReviews            *bool    `json:"zero_reviews"`
	CollisionRisk          bool     `json:"collision_risk"`
	CategoryMismatch       bool     `json:"category_mismatch"`
	ServiceAreaOnlyUnknown bool     `json:"service_area_only_unknown"`
	Severity               Severity `json:"severity"`
}
