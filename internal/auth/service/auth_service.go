package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/token"
	"github.com/atoolsera/agency-backend/internal/validate"
)

const minPasswordLength = 6

type UserStore interface {
	Create(ctx context.Context, user *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	EnsureFirebaseUser(ctx context.Context, firebaseUID, email string) (string, error)
}

type RoleStore interface {
	Grant(ctx context.Context, userID string, role domain.Role) error
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

type SessionStore interface {
	Create(ctx context.Context, identityID, email string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type TokenIssuer interface {
	Issue(sess *domain.Session) (string, error)
	Parse(tokenStr string) (*token.Claims, error)
}

type AuthService struct {
	users    UserStore
	roles    RoleStore
	sessions SessionStore
	tokens   TokenIssuer
}

func NewAuthService(users UserStore, roles RoleStore, sessions SessionStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		sessions: sessions,
		tokens:   tokens,
	}
}

// SignUp registers a local identity and signs it in. New identities carry no
// role until onboarding or an operator grants one.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.SignedSession, error) {
	email = normalizeEmail(email)
	if !validate.Email(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.Identity{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user.ID, user.Email)
}

// SignIn checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.SignedSession, error) {
	email = normalizeEmail(email)
	if !validate.Email(email) || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user.ID, user.Email)
}

// SignOut revokes the session behind tokenStr. Invalid tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, tokenStr string) error {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// CurrentSession returns the session and acting identity behind tokenStr.
func (s *AuthService) CurrentSession(ctx context.Context, tokenStr string) (*domain.Session, domain.Actor, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, domain.Anonymous(), err
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.Anonymous(), domain.ErrInvalidToken
	}
	if err != nil {
		return nil, domain.Anonymous(), err
	}
	if sess.IdentityID != claims.Subject {
		return nil, domain.Anonymous(), domain.ErrInvalidToken
	}

	actor, err := s.actorFor(ctx, sess.IdentityID, sess.Email)
	if err != nil {
		return nil, domain.Anonymous(), err
	}
	return sess, actor, nil
}

// Resolve maps an access token to the acting identity. The role is read on
// every call so grants and revocations apply to live sessions.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) (domain.Actor, error) {
	_, actor, err := s.CurrentSession(ctx, tokenStr)
	return actor, err
}

// ResolveFirebase maps a verified Firebase user to the acting identity,
// creating the local identity record on first sight.
func (s *AuthService) ResolveFirebase(ctx context.Context, firebaseUID, email string) (domain.Actor, error) {
	email = normalizeEmail(email)
	id, err := s.users.EnsureFirebaseUser(ctx, firebaseUID, email)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("ensure user: %w", err)
	}
	return s.actorFor(ctx, id, email)
}

// GrantAdmin pre-provisions the admin role for an existing identity.
func (s *AuthService) GrantAdmin(ctx context.Context, email string) (*domain.Identity, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := s.roles.Grant(ctx, user.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) openSession(ctx context.Context, identityID, email string) (*domain.SignedSession, error) {
	sess, err := s.sessions.Create(ctx, identityID, email)
	if err != nil {
		return nil, err
	}

	tok, err := s.tokens.Issue(sess)
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, err
	}

	actor, err := s.actorFor(ctx, identityID, email)
	if err != nil {
		return nil, err
	}

	return &domain.SignedSession{Token: tok, ExpiresAt: sess.ExpiresAt, Actor: actor}, nil
}

func (s *AuthService) actorFor(ctx context.Context, identityID, email string) (domain.Actor, error) {
	role, err := s.roles.RoleOf(ctx, identityID)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("lookup role: %w", err)
	}
	return domain.Actor{IdentityID: identityID, Email: email, Role: role}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
