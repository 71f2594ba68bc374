package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestDetectCollisions_SiblingInDifferentState(t *testing.T) {
	t.Parallel()

	candidates := []model.Candidate{
		{PlaceID: "sel", Name: "Apex Roofing", FormattedAddress: "100 Main St, Austin, TX 78701, USA"},
		{PlaceID: "sib", Name: "Apex Roofing", FormattedAddress: "200 Elm St, Tulsa, OK 74101, USA"},
	}

	report := DetectCollisions(candidates, 0, "Apex Roofing", "")
	require.True(t, report.CollisionRisk)
	require.Len(t, report.Candidates, 1)
	assert.Equal(t, "sib", report.Candidates[0].PlaceID)
	assert.InDelta(t, 1.0, report.Candidates[0].NameSimilarity, 1e-9)
}

func TestDetectCollisions_SiblingWithDifferentDomain(t *testing.T) {
	t.Parallel()

	candidates := []model.Candidate{
		{PlaceID: "sel", Name: "Apex Roofing", FormattedAddress: "100 Main St, Austin, TX",
			Website: "https://apexroofing.com"},
		{PlaceID: "sib", Name: "Apex Roofing", FormattedAddress: "300 Oak St, Austin, TX",
			Website: "https://apexroofingtulsa.com"},
	}

	report := DetectCollisions(candidates, 0, "Apex Roofing", "apexroofing.com")
	require.True(t, report.CollisionRisk)
	require.Len(t, report.Candidates, 1)
}

func TestDetectCollisions_SameStateSameDomainNoRisk(t *testing.T) {
	t.Parallel()

	candidates := []model.Candidate{
		{PlaceID: "sel", Name: "Apex Roofing", FormattedAddress: "100 Main St, Austin, TX",
			Website: "https://apexroofing.com"},
		{PlaceID: "branch", Name: "Apex Roofing", FormattedAddress: "900 Lamar Blvd, Austin, TX",
			Website: "https://www.apexroofing.com/north"},
	}

	report := DetectCollisions(candidates, 0, "Apex Roofing", "apexroofing.com")
	assert.False(t, report.CollisionRisk)
	assert.Empty(t, report.Candidates)
	assert.Empty(t, report.Suggestions)
}

func TestDetectCollisions_DissimilarNameIgnored(t *testing.T) {
	t.Parallel()

	candidates := []model.Candidate{
		{PlaceID: "sel", Name: "Apex Roofing", FormattedAddress: "100 Main St, Austin, TX"},
		{PlaceID: "other", Name: "Lone Star Plumbing", FormattedAddress: "200 Elm St, Tulsa, OK"},
	}

	report := DetectCollisions(candidates, 0, "Apex Roofing", "")
	assert.False(t, report.CollisionRisk)
}

func TestDetectCollisions_Suggestions(t *testing.T) {
	t.Parallel()

	candidates := []model.Candidate{
		{PlaceID: "sel", Name: "Apex Roofing", FormattedAddress: "100 Main St, Austin, TX 78701"},
		{PlaceID: "sib", Name: "Apex Roofing", FormattedAddress: "200 Elm St, Tulsa, OK 74101"},
	}

	report := DetectCollisions(candidates, 0, "Apex Roofing", "")
	require.True(t, report.CollisionRisk)
	assert.Equal(t, []string{
		"Apex Roofing Austin",
		"Apex Roofing Austin TX",
	}, report.Suggestions)
}

func TestDetectCollisions_InvalidSelectedIndex(t *testing.T) {
	t.Parallel()

	report := DetectCollisions([]model.Candidate{{Name: "Apex Roofing"}}, -1, "Apex Roofing", "")
	assert.False(t, report.CollisionRisk)
}

func TestTrailingStateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"standard", "100 Main St, Austin, TX 78701, USA", "TX"},
		{"no country suffix", "100 Main St, Austin, TX 78701", "TX"},
		{"zip skipped", "Austin, TX 78701", "TX"},
		{"lowercase not a state", "100 main st, austin, tx 78701", ""},
		{"none", "Somewhere far away", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, trailingStateToken(tt.address))
		})
	}
}

func TestCityBeforeState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Austin", cityBeforeState("100 Main St, Austin, TX 78701, USA", "TX"))
	assert.Equal(t, "", cityBeforeState("TX 78701", "TX"))
	assert.Equal(t, "", cityBeforeState("100 Main St, Austin", ""))
}
