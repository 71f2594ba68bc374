package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	processed  INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS businesses (
	id             TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL REFERENCES runs(id),
	name           TEXT NOT NULL,
	domain         TEXT,
	niche          TEXT,
	region         TEXT,
	email          TEXT,
	contact_url    TEXT,
	phone          TEXT,
	heuristics     TEXT NOT NULL,
	friction_score INTEGER NOT NULL,
	band           TEXT NOT NULL,
	tier           TEXT NOT NULL,
	scored_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY,
	business_name TEXT NOT NULL,
	location_hint TEXT,
	data          TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_businesses_run_id ON businesses(run_id);
CREATE INDEX IF NOT EXISTS idx_businesses_niche ON businesses(niche);
CREATE INDEX IF NOT EXISTS idx_businesses_band ON businesses(band);
CREATE INDEX IF NOT EXISTS idx_businesses_score ON businesses(friction_score DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_business_name ON assessments(business_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, kind string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, kind, "running", now, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}
	return id, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, processed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = 'complete', processed = ?, updated_at = ? WHERE id = ?`,
		processed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) SaveBusiness(ctx context.Context, runID string, b model.Business) error {
	heuristicsJSON, err := json.Marshal(b.Heuristics)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal heuristics")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO businesses (id, run_id, name, domain, niche, region, email, contact_url, phone, heuristics, friction_score, band, tier, scored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, b.Name, b.Domain, b.Niche, b.Region,
		b.Email, b.ContactURL, b.Phone, string(heuristicsJSON),
		b.FrictionScore, string(b.Band), string(b.Tier), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert business %s", b.Name)
}

func (s *SQLiteStore) ListBusinesses(ctx context.Context, filter BusinessFilter) ([]model.Business, error) {
	query := `SELECT name, domain, niche, region, email, contact_url, phone, heuristics, friction_score, band, tier
	          FROM businesses WHERE 1=1`
	var args []any

	if filter.Niche != "" {
		query += ` AND niche = ?`
		args = append(args, filter.Niche)
	}
	if filter.Band != "" {
		query += ` AND band = ?`
		args = append(args, string(filter.Band))
	}
	if filter.MinScore > 0 {
		query += ` AND friction_score >= ?`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY friction_score DESC, scored_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list businesses")
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *b)
	}
	return businesses, eris.Wrap(rows.Err(), "sqlite: list businesses iterate")
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *resolve.Assessment) (string, error) {
	id := uuid.New().String()

	dataJSON, err := json.Marshal(a)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal assessment")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, business_name, location_hint, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, a.Query.Name, a.Query.LocationHint, string(dataJSON), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert assessment for %s", a.Query.Name)
	}
	return id, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanBusiness(row scannable) (*model.Business, error) {
	var b model.Business
	var heuristicsJSON string

	err := row.Scan(&b.Name, &b.Domain, &b.Niche, &b.Region, &b.Email,
		&b.ContactURL, &b.Phone, &heuristicsJSON, &b.FrictionScore, &b.Band, &b.Tier)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan business")
	}
	if err := json.Unmarshal([]byte(heuristicsJSON), &b.Heuristics); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal heuristics")
	}
	return &b, nil
}
