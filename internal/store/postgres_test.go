package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), "score", "running", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	runID, err := s.CreateRun(context.Background(), "score")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status = 'complete'`).
		WithArgs(5, pgxmock.AnyArg(), "missing-run").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteRun(context.Background(), "missing-run", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveBusiness(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO businesses`).
		WithArgs(pgxmock.AnyArg(), "run-1", "Apex Roofing", "apexroofing.com", "roofing", "Austin, TX",
			"owner@apexroofing.com", "", "", pgxmock.AnyArg(), 85, "A", "PRIORITY", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	b := model.Business{
		Name:          "Apex Roofing",
		Domain:        "apexroofing.com",
		Niche:         "roofing",
		Region:        "Austin, TX",
		Email:         "owner@apexroofing.com",
		FrictionScore: 85,
		Band:          model.BandA,
		Tier:          model.TierPriority,
	}
	require.NoError(t, s.SaveBusiness(context.Background(), "run-1", b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBusinesses(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{
		"name", "domain", "niche", "region", "email", "contact_url", "phone",
		"heuristics", "friction_score", "band", "tier",
	}).AddRow(
		"Apex Roofing", "apexroofing.com", "roofing", "Austin, TX", "owner@apexroofing.com", "", "",
		[]byte(`{"form_inputs":4,"has_viewport_meta":true}`), 85, model.BandA, model.TierPriority,
	)

	mock.ExpectQuery(`SELECT name, domain, niche`).
		WithArgs("roofing", 100).
		WillReturnRows(rows)

	businesses, err := s.ListBusinesses(context.Background(), BusinessFilter{Niche: "roofing"})
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, "Apex Roofing", businesses[0].Name)
	assert.Equal(t, 4, businesses[0].Heuristics.FormInputs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "Apex Roofing", "Austin TX", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	a := &resolve.Assessment{
		Query:  resolve.Query{Name: "Apex Roofing", LocationHint: "Austin TX"},
		Source: "manual",
	}
	id, err := s.SaveAssessment(context.Background(), a)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
