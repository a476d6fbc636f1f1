package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
)

const ctxActor = "actor"

// Resolver maps a bearer token to the acting identity.
type Resolver interface {
	Resolve(ctx context.Context, tokenStr string) (domain.Actor, error)
}

// Authenticate derives the acting identity for every request. Requests
// without a token continue as anonymous; a token that does not resolve is
// rejected so clients learn their session ended.
func Authenticate(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractToken(c)
		if tok == "" {
			c.Set(ctxActor, domain.Anonymous())
			c.Next()
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), tok)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidToken) {
				logging.FromContext(c.Request.Context()).LogError("auth.resolve", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to resolve session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.ErrInvalidToken.Error()})
			return
		}

		c.Set(ctxActor, actor)
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous callers with a sign-in redirect hint.
func RequireAuthenticated(area domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Authenticated() {
			deny(c, http.StatusUnauthorized, domain.ErrUnauthenticated, area)
			return
		}
		c.Next()
	}
}

// RequireRole admits only callers holding one of roles. The first role names
// the sign-in area used in the redirect hint.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	area := domain.RoleNone
	if len(roles) > 0 {
		area = roles[0]
	}

	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !actor.Authenticated() {
			deny(c, http.StatusUnauthorized, domain.ErrUnauthenticated, area)
			return
		}
		if _, ok := allowed[actor.Role]; !ok {
			deny(c, http.StatusForbidden, domain.ErrForbidden, area)
			return
		}
		c.Next()
	}
}

// ActorFrom returns the acting identity set by Authenticate, or anonymous.
func ActorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(ctxActor); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Anonymous()
}

// SignInRedirect is the client route an area sends visitors to.
func SignInRedirect(area domain.Role) string {
	if area == domain.RoleNone {
		return "/auth"
	}
	return "/auth?type=" + string(area)
}

// BearerToken exposes the raw token for handlers that act on the session itself.
func BearerToken(c *gin.Context) string {
	return extractToken(c)
}

func deny(c *gin.Context, status int, err error, area domain.Role) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":       false,
		"error":    err.Error(),
		"redirect": SignInRedirect(area),
	})
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
