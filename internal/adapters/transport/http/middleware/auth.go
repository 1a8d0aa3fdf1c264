package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skylume/user-service/internal/domain/user/model"
	"github.com/skylume/user-service/internal/domain/user/token"
)

const identityKey = "auth.identity"

// TokenExtractor pulls a candidate token out of a request. Adapters are
// tried in order; the first hit wins.
type TokenExtractor interface {
	Extract(r *http.Request) (string, bool)
}

// BearerHeaderExtractor reads "Authorization: Bearer <token>".
type BearerHeaderExtractor struct{}

func (BearerHeaderExtractor) Extract(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// CookieExtractor reads the token from a named cookie.
type CookieExtractor struct {
	Name string
}

func (c CookieExtractor) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// RequireAuth verifies the access token and stores the caller identity on
// the request. Handlers read it once and pass it down as an explicit
// argument; services never touch request context.
func RequireAuth(issuer token.Issuer, extractors ...TokenExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw string
		found := false
		for _, ex := range extractors {
			if raw, found = ex.Extract(c.Request); found {
				break
			}
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := issuer.ValidateAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, model.Identity{UserID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	ident, ok := v.(model.Identity)
	return ident, ok
}
