package friction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func contactable(name, niche string, score int) model.Business {
	return model.Business{Name: name, Niche: niche, Email: name + "@example.com", FrictionScore: score}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	t.Parallel()

	input := []model.Business{
		contactable("low", "roofing", 30),
		contactable("high", "pest", 90),
		contactable("mid", "hvac", 60),
	}

	ranked := Rank(input)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Name)
	assert.Equal(t, "mid", ranked[1].Name)
	assert.Equal(t, "low", ranked[2].Name)
}

func TestRank_NichePriorityBreaksTies(t *testing.T) {
	t.Parallel()

	input := []model.Business{
		contactable("pest co", "pest", 70),
		contactable("unknown co", "plumbing", 70),
		contactable("roof co", "roofing", 70),
		contactable("hvac co", "HVAC", 70), // case-insensitive
	}

	ranked := Rank(input)
	require.Len(t, ranked, 4)
	assert.Equal(t, "roof co", ranked[0].Name)
	assert.Equal(t, "hvac co", ranked[1].Name)
	assert.Equal(t, "pest co", ranked[2].Name)
	assert.Equal(t, "unknown co", ranked[3].Name)
}

func TestRank_StableForEqualScoreAndNiche(t *testing.T) {
	t.Parallel()

	input := []model.Business{
		contactable("first", "roofing", 70),
		contactable("second", "roofing", 70),
		contactable("third", "roofing", 70),
	}

	ranked := Rank(input)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Name)
	assert.Equal(t, "second", ranked[1].Name)
	assert.Equal(t, "third", ranked[2].Name)
}

func TestRank_DropsUncontactable(t *testing.T) {
	t.Parallel()

	input := []model.Business{
		{Name: "ghost", Niche: "roofing", FrictionScore: 100}, // no contact channel
		contactable("reachable", "hvac", 20),
		{Name: "phone only", Niche: "pest", Phone: "512-555-0100", FrictionScore: 50},
	}

	ranked := Rank(input)
	require.Len(t, ranked, 2)
	assert.Equal(t, "phone only", ranked[0].Name)
	assert.Equal(t, "reachable", ranked[1].Name)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []model.Business{
		contactable("b", "hvac", 10),
		contactable("a", "roofing", 90),
	}

	_ = Rank(input)
	assert.Equal(t, "b", input[0].Name)
	assert.Equal(t, "a", input[1].Name)
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Rank(nil))
}

func TestNichePriorityOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, nichePriorityOf("roofing"))
	assert.Equal(t, 1, nichePriorityOf("  Roofing "))
	assert.Equal(t, 6, nichePriorityOf("pest"))
	assert.Equal(t, defaultNichePriority, nichePriorityOf("plumbing"))
	assert.Equal(t, defaultNichePriority, nichePriorityOf(""))
}
