package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a local (password) identity.
func (r *UserRepository) Create(ctx context.Context, user *domain.Identity) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, normalizeEmail(user.Email), user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}

	user.Email = normalizeEmail(user.Email)
	return nil
}

// GetByEmail retrieves an identity by its (case-insensitive) email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `
		SELECT id, email, COALESCE(password_hash, ''), firebase_uid, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, normalizeEmail(email)))
}

// GetByID retrieves an identity by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	query := `
		SELECT id, email, COALESCE(password_hash, ''), firebase_uid, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// EnsureFirebaseUser creates or refreshes the identity behind a Firebase UID and
// returns its id.
func (r *UserRepository) EnsureFirebaseUser(ctx context.Context, firebaseUID, email string) (string, error) {
	query := `
		INSERT INTO users (firebase_uid, email)
		VALUES ($1, $2)
		ON CONFLICT (firebase_uid) DO UPDATE
		SET email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
		    updated_at = NOW()
		RETURNING id
	`

	if email == "" {
		// Email is required - fall back to a placeholder keyed by the uid
		email = firebaseUID + "@firebase.local"
	}

	var id string
	if err := r.db.QueryRowContext(ctx, query, firebaseUID, normalizeEmail(email)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.Identity, error) {
	var user domain.Identity
	var firebaseUID sql.NullString

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &firebaseUID, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if firebaseUID.Valid {
		user.FirebaseUID = &firebaseUID.String
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
