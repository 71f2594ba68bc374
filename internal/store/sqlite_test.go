package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleBusiness(name, niche string, score int) model.Business {
	band := model.BandForScore(score)
	return model.Business{
		Name:          name,
		Domain:        "example.com",
		Niche:         niche,
		Region:        "Austin, TX",
		Email:         "owner@example.com",
		Heuristics:    model.HeuristicResult{FormInputs: 4, HasViewportMeta: true},
		FrictionScore: score,
		Band:          band,
		Tier:          model.TierForBand(band),
	}
}

func TestSQLite_Run_Lifecycle(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	runID, err := st.CreateRun(ctx, "score")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	require.NoError(t, st.CompleteRun(ctx, runID, 12))
}

func TestSQLite_CompleteRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.CompleteRun(context.Background(), "nonexistent-run", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_SaveAndListBusinesses(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	runID, err := st.CreateRun(ctx, "score")
	require.NoError(t, err)

	require.NoError(t, st.SaveBusiness(ctx, runID, sampleBusiness("Apex Roofing", "roofing", 85)))
	require.NoError(t, st.SaveBusiness(ctx, runID, sampleBusiness("Cool Breeze HVAC", "hvac", 45)))
	require.NoError(t, st.SaveBusiness(ctx, runID, sampleBusiness("GreenScape", "landscaping", 70)))

	all, err := st.ListBusinesses(ctx, BusinessFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by score descending.
	assert.Equal(t, "Apex Roofing", all[0].Name)
	assert.Equal(t, "GreenScape", all[1].Name)
	assert.Equal(t, "Cool Breeze HVAC", all[2].Name)

	// Heuristics survive the JSON round trip.
	assert.Equal(t, 4, all[0].Heuristics.FormInputs)
	assert.True(t, all[0].Heuristics.HasViewportMeta)
}

func TestSQLite_ListBusinesses_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	runID, err := st.CreateRun(ctx, "score")
	require.NoError(t, err)

	require.NoError(t, st.SaveBusiness(ctx, runID, sampleBusiness("Apex Roofing", "roofing", 85)))
	require.NoError(t, st.SaveBusiness(ctx, runID, sampleBusiness("Cool Breeze HVAC", "hvac", 45)))

	byNiche, err := st.ListBusinesses(ctx, BusinessFilter{Niche: "hvac"})
	require.NoError(t, err)
	require.Len(t, byNiche, 1)
	assert.Equal(t, "Cool Breeze HVAC", byNiche[0].Name)

	byBand, err := st.ListBusinesses(ctx, BusinessFilter{Band: model.BandA})
	require.NoError(t, err)
	require.Len(t, byBand, 1)
	assert.Equal(t, "Apex Roofing", byBand[0].Name)

	byScore, err := st.ListBusinesses(ctx, BusinessFilter{MinScore: 60})
	require.NoError(t, err)
	require.Len(t, byScore, 1)

	limited, err := st.ListBusinesses(ctx, BusinessFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Apex Roofing", limited[0].Name)
}

func TestSQLite_SaveAssessment(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := &resolve.Assessment{
		Query:          resolve.Query{Name: "Apex Roofing", LocationHint: "Austin TX"},
		Source:         "places",
		CandidateCount: 2,
	}
	id, err := st.SaveAssessment(ctx, a)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
