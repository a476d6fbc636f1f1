package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atoolsera/agency-backend/config"
	"github.com/atoolsera/agency-backend/internal/storage/postgres"
)

// Databases bundles the two handles onto the same Postgres database: the pgx
// pool for domain repositories and database/sql for identities and
// migrations.
type Databases struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
}

func OpenDatabases(ctx context.Context, cfg *config.DatabaseConfig) (*Databases, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := postgres.NewConnection(cfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("identity store: %w", err)
	}

	return &Databases{Pool: pool, SQL: sqlDB}, nil
}

func (d *Databases) Close() {
	if d == nil {
		return
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
}
