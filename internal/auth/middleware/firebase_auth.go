package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
)

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseResolver maps a verified Firebase user to the acting identity.
type FirebaseResolver interface {
	ResolveFirebase(ctx context.Context, firebaseUID, email string) (domain.Actor, error)
}

// FirebaseAuthenticate is the AUTH_PROVIDER=firebase counterpart of
// Authenticate: it validates Firebase ID tokens and maps them to local
// identities and roles.
func FirebaseAuthenticate(verifier IDTokenVerifier, resolver FirebaseResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractToken(c)
		if tok == "" {
			c.Set(ctxActor, domain.Anonymous())
			c.Next()
			return
		}

		ctx := c.Request.Context()
		decodedToken, err := verifier.VerifyIDToken(ctx, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.ErrInvalidToken.Error()})
			return
		}

		// Extract email from claims if available
		email, _ := decodedToken.Claims["email"].(string)

		actor, err := resolver.ResolveFirebase(ctx, decodedToken.UID, email)
		if err != nil {
			logging.FromContext(ctx).LogError("auth.resolve_firebase", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to resolve session"})
			return
		}

		c.Set(ctxActor, actor)
		c.Next()
	}
}
