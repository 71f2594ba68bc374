package resolve

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/pkg/places"
)

// fakePlacesClient records the query and returns canned places.
type fakePlacesClient struct {
	lastQuery string
	resp      *places.TextSearchResponse
	err       error
}

func (f *fakePlacesClient) TextSearch(_ context.Context, query string) (*places.TextSearchResponse, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestAPIBacked_Candidates(t *testing.T) {
	t.Parallel()

	reviews := 7
	fake := &fakePlacesClient{
		resp: &places.TextSearchResponse{
			Places: []places.Place{
				{
					ID:                  "place-1",
					DisplayName:         places.DisplayName{Text: "Apex Roofing"},
					FormattedAddress:    "100 Main St, Austin, TX",
					Types:               []string{"roofing_contractor"},
					BusinessStatus:      "OPERATIONAL",
					Rating:              4.8,
					UserRatingCount:     &reviews,
					NationalPhoneNumber: "(512) 555-0100",
					WebsiteURI:          "https://apexroofing.com",
				},
			},
		},
	}
	src := NewAPIBacked(fake, 100)

	candidates, err := src.Candidates(context.Background(), Query{Name: "Apex Roofing", LocationHint: "Austin TX"})
	require.NoError(t, err)

	assert.Equal(t, "Apex Roofing Austin TX", fake.lastQuery)
	require.Len(t, candidates, 1)
	assert.Equal(t, "place-1", candidates[0].PlaceID)
	assert.Equal(t, "Apex Roofing", candidates[0].Name)
	assert.Equal(t, []string{"roofing_contractor"}, candidates[0].Types)
	require.NotNil(t, candidates[0].UserRatingCount)
	assert.Equal(t, 7, *candidates[0].UserRatingCount)
}

func TestAPIBacked_RequiresName(t *testing.T) {
	t.Parallel()

	src := NewAPIBacked(&fakePlacesClient{}, 100)
	_, err := src.Candidates(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestAPIBacked_PropagatesSearchError(t *testing.T) {
	t.Parallel()

	src := NewAPIBacked(&fakePlacesClient{err: eris.New("boom")}, 100)
	_, err := src.Candidates(context.Background(), Query{Name: "Apex Roofing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "places search")
}

func TestManualHint_Candidates(t *testing.T) {
	t.Parallel()

	src := ManualHint{}
	assert.Equal(t, "manual", src.Name())

	candidates, err := src.Candidates(context.Background(), Query{
		Name:         "Apex Roofing",
		LocationHint: "Austin TX",
		Phone:        "512-555-0100",
		Website:      "apexroofing.com",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "manual", c.PlaceID)
	assert.Equal(t, "Apex Roofing", c.Name)
	assert.Equal(t, "Austin TX", c.FormattedAddress)
	assert.Nil(t, c.UserRatingCount, "review count is unknown, not zero")
}

func TestManualHint_RequiresName(t *testing.T) {
	t.Parallel()

	_, err := ManualHint{}.Candidates(context.Background(), Query{})
	require.Error(t, err)
}
