package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

// Pool is the subset of pgxpool.Pool the store uses, kept behind an
// interface so tests can inject a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_run":        `INSERT INTO runs (id, kind, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
	"complete_run":      `UPDATE runs SET status = 'complete', processed = $1, updated_at = $2 WHERE id = $3`,
	"insert_business":   `INSERT INTO businesses (id, run_id, name, domain, niche, region, email, contact_url, phone, heuristics, friction_score, band, tier, scored_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
	"insert_assessment": `INSERT INTO assessments (id, business_name, location_hint, data, created_at) VALUES ($1, $2, $3, $4, $5)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	processed  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS businesses (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	run_id         TEXT NOT NULL REFERENCES runs(id),
	name           TEXT NOT NULL,
	domain         TEXT,
	niche          TEXT,
	region         TEXT,
	email          TEXT,
	contact_url    TEXT,
	phone          TEXT,
	heuristics     JSONB NOT NULL,
	friction_score INTEGER NOT NULL,
	band           TEXT NOT NULL,
	tier           TEXT NOT NULL,
	scored_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	business_name TEXT NOT NULL,
	location_hint TEXT,
	data          JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_businesses_run_id ON businesses(run_id);
CREATE INDEX IF NOT EXISTS idx_businesses_niche ON businesses(niche);
CREATE INDEX IF NOT EXISTS idx_businesses_band ON businesses(band);
CREATE INDEX IF NOT EXISTS idx_businesses_score ON businesses(friction_score DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_business_name ON assessments(business_name);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, kind string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, kind, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, kind, "running", now, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert run")
	}
	return id, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, processed int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = 'complete', processed = $1, updated_at = $2 WHERE id = $3`,
		processed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) SaveBusiness(ctx context.Context, runID string, b model.Business) error {
	heuristicsJSON, err := json.Marshal(b.Heuristics)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal heuristics")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO businesses (id, run_id, name, domain, niche, region, email, contact_url, phone, heuristics, friction_score, band, tier, scored_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		uuid.New().String(), runID, b.Name, b.Domain, b.Niche, b.Region,
		b.Email, b.ContactURL, b.Phone, heuristicsJSON,
		b.FrictionScore, string(b.Band), string(b.Tier), time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: insert business %s", b.Name)
}

func (s *PostgresStore) ListBusinesses(ctx context.Context, filter BusinessFilter) ([]model.Business, error) {
	query := `SELECT name, domain, niche, region, email, contact_url, phone, heuristics, friction_score, band, tier
	          FROM businesses WHERE 1=1`
	var args []any

	if filter.Niche != "" {
		args = append(args, filter.Niche)
		query += ` AND niche = $` + strconv.Itoa(len(args))
	}
	if filter.Band != "" {
		args = append(args, string(filter.Band))
		query += ` AND band = $` + strconv.Itoa(len(args))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		query += ` AND friction_score >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY friction_score DESC, scored_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list businesses")
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		var b model.Business
		var heuristicsJSON []byte
		if err := rows.Scan(&b.Name, &b.Domain, &b.Niche, &b.Region, &b.Email,
			&b.ContactURL, &b.Phone, &heuristicsJSON, &b.FrictionScore, &b.Band, &b.Tier); err != nil {
			return nil, eris.Wrap(err, "postgres: scan business")
		}
		if err := json.Unmarshal(heuristicsJSON, &b.Heuristics); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal heuristics")
		}
		businesses = append(businesses, b)
	}
	return businesses, eris.Wrap(rows.Err(), "postgres: list businesses iterate")
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *resolve.Assessment) (string, error) {
	id := uuid.New().String()

	dataJSON, err := json.Marshal(a)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal assessment")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, business_name, location_hint, data, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, a.Query.Name, a.Query.LocationHint, dataJSON, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert assessment for %s", a.Query.Name)
	}
	return id, nil
}
