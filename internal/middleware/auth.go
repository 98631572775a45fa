package middleware

import (
	"context"
	"strings"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// IdentityResolver turns a bearer token into the caller's Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*authz.Identity, error)
}

// Authenticate resolves the Bearer token on every protected route and rejects
// inactive employees.
func Authenticate(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			AbortWithError(c, apierror.Unauthenticated("Not authenticated"))
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if err := authz.Authorize(id, authz.ActiveRequired); err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(IdentityKey, id)
		c.Next()
	}
}

// Require runs the guard checks against the authenticated identity.
func Require(checks ...authz.Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(GetIdentity(c), checks...); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by Authenticate, or nil.
func GetIdentity(c *gin.Context) *authz.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*authz.Identity)
	return id
}
