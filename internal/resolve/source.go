package resolve

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/pkg/places"
)

// Query is the business profile being resolved.
type Query struct {
	Name         string `json:"name"`
	LocationHint string `json:"location_hint,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
}

// Source supplies raw entity candidates for a query. The caller picks
// the variant once and passes it into the pipeline explicitly; nothing
// here reads ambient process state.
type Source interface {
	Name() string
	Candidates(ctx context.Context, q Query) ([]model.Candidate, error)
}

// APIBacked resolves candidates through the Places API, rate limited.
type APIBacked struct {
	client  places.Client
	limiter *rate.Limiter
}

// NewAPIBacked creates an APIBacked source. perSecond caps outbound
// search calls; values <=0 fall back to 10/s.
func NewAPIBacked(client places.Client, perSecond float64) *APIBacked {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &APIBacked{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Name implements Source.
func (s *APIBacked) Name() string { return "api" }

// Candidates searches the Places API for the query profile.
func (s *APIBacked) Candidates(ctx context.Context, q Query) ([]model.Candidate, error) {
	if q.Name == "" {
		return nil, eris.New("resolve: business name is required")
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "resolve: rate limit wait")
	}

	query := q.Name
	if q.LocationHint != "" {
		query += " " + q.LocationHint
	}

	resp, err := s.client.TextSearch(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "resolve: places search")
	}

	candidates := make([]model.Candidate, 0, len(resp.Places))
	for _, p := range resp.Places {
		candidates = append(candidates, model.Candidate{
			PlaceID:          p.ID,
			Name:             p.DisplayName.Text,
			FormattedAddress: p.FormattedAddress,
			Types:            p.Types,
			BusinessStatus:   p.BusinessStatus,
			Rating:           p.Rating,
			UserRatingCount:  p.UserRatingCount,
			Phone:            p.NationalPhoneNumber,
			Website:          p.WebsiteURI,
		})
	}
	return candidates, nil
}

// ManualHint yields a single candidate built from operator-provided
// profile data, for running the pipeline without API access.
type ManualHint struct{}

// Name implements Source.
func (ManualHint) Name() string { return "manual" }

// Candidates converts the query itself into the sole candidate. Review
// count stays nil: unknown, not zero.
func (ManualHint) Candidates(_ context.Context, q Query) ([]model.Candidate, error) {
	if q.Name == "" {
		return nil, eris.New("resolve: business name is required")
	}
	return []model.Candidate{{
		PlaceID:          "manual",
		Name:             q.Name,
		FormattedAddress: q.LocationHint,
		Phone:            q.Phone,
		Website:          q.Website,
	}}, nil
}
