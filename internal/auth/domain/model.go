package domain

import "time"

// Role is the coarse authorization label attached to an identity.
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// Identity is an authenticated principal.
// Local sign-ups carry a password hash; Firebase users carry their UID.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirebaseUID  *string   `json:"firebase_uid,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the acting identity handed to every service call. The zero value
// is an anonymous visitor.
type Actor struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role,omitempty"`
}

func Anonymous() Actor { return Actor{} }

func (a Actor) Authenticated() bool { return a.IdentityID != "" }

func (a Actor) IsAdmin() bool { return a.Authenticated() && a.Role == RoleAdmin }

func (a Actor) IsDeveloper() bool { return a.Authenticated() && a.Role == RoleDeveloper }

// Session is the server-side record behind an access token.
type Session struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// SignedSession is returned by sign-in and sign-up.
type SignedSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Actor     Actor     `json:"actor"`
}
