// Package dashgin mounts the dashboard engine behind gin. Handlers stay
// thin: verify the caller, call the service, map typed errors, write JSON.
// All formatting and localization belongs to the consumer.
package dashgin

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/adapters/ginutil"
	"github.com/facture-ma/dashkit/tenant"
	"github.com/facture-ma/dashkit/token"
)

const identityKey = "dashkit.identity"

// AuthRequired verifies the bearer token and attaches the caller's identity
// and company to the request context.
func AuthRequired(v *token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			ginutil.Unauthorized(c, "missing_token")
			return
		}
		claims, err := v.Verify(c.Request.Context(), raw)
		if err != nil {
			ginutil.Unauthorized(c, "invalid_token")
			return
		}
		id := claims.Identity()
		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(tenant.WithCompany(c.Request.Context(), id.CompanyID))
		c.Next()
	}
}

func bearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentIdentity returns the verified caller set by AuthRequired.
func CurrentIdentity(c *gin.Context) (access.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return access.Identity{}, false
	}
	id, ok := v.(access.Identity)
	return id, ok
}
