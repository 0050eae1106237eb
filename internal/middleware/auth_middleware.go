package middleware

import (
	"context"
	"strings"

	"github.com/Falasefemi2/hr-portal/internal/identity"
	"github.com/Falasefemi2/hr-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

const accessTokenCookie = "access_token"

type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) identity.Principal
}

// AuthMiddleware resolves the bearer credential into a principal and stores it
// on the request context. It never aborts: an unresolved credential leaves an
// unauthenticated principal behind and the access gate rejects it later.
func AuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		p := resolver.Resolve(c.Request.Context(), token)
		ctx := contextutil.WithPrincipal(c.Request.Context(), p)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
