// Package pgtest opens a migrated, throwaway Postgres schema for repository
// tests. Tests are skipped unless TEST_DATABASE_DSN (or TEST_DB_DSN) is set.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/atoolsera/agency-backend/internal/storage/postgres"
)

func dsn() string {
	if v := os.Getenv("TEST_DATABASE_DSN"); v != "" {
		return v
	}
	return os.Getenv("TEST_DB_DSN")
}

// Open creates a fresh schema, applies the embedded migrations to it and
// returns a pool whose search_path points there. The schema is dropped when
// the test ends.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := dsn()
	if url == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping PostgreSQL repository test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)

	ensurePgcrypto(t, ctx, admin)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "create schema "+schema)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = admin.Exec(ctx, "drop schema if exists "+schema+" cascade")
		_ = admin.Close(ctx)
	})

	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	cfg.MaxConns = 8
	cfg.ConnConfig.RuntimeParams["search_path"] = schema + ",public"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	_, err = postgres.Migrate(ctx, db, postgres.Migrations)
	require.NoError(t, db.Close())
	require.NoError(t, err)

	return pool
}

// ensurePgcrypto installs the extension in public so that per-test schemas
// never own it. Packages racing on the first install are fine.
func ensurePgcrypto(t *testing.T, ctx context.Context, conn *pgx.Conn) {
	t.Helper()
	_, err := conn.Exec(ctx, "create extension if not exists pgcrypto with schema public")
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "42710") {
		return
	}
	require.NoError(t, err)
}

// InsertUser creates an identity and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`insert into users (email) values ($1) returning id;`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertDeveloper creates a profile row for userID directly, bypassing
// onboarding, and returns its id.
func InsertDeveloper(t *testing.T, pool *pgxpool.Pool, userID, status string, available bool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
insert into developers (user_id, name, email, role, experience_years, status, is_available)
values ($1::uuid, 'Dev', $2, 'Backend Developer', 3, $3, $4)
returning id;
`, userID, fmt.Sprintf("%s@dev.test", userID[:8]), status, available).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertProjectSubmission creates a minimal submission and returns its id.
func InsertProjectSubmission(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
insert into project_submissions (project_type, timeline, name, email)
values ('new_website', '1-2 months', $1, 'lead@client.test')
returning id;
`, name).Scan(&id)
	require.NoError(t, err)
	return id
}
