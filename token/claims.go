// Package token accepts bearer tokens issued by an external auth server
// (verify-only mode) and extracts the dashboard-relevant claims. dashkit
// never issues production tokens; the signer here exists for test issuers.
package token

import (
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/facture-ma/dashkit/access"
)

// Claims are the dashkit-relevant fields carried by an accepted token.
type Claims struct {
	UserID      string
	CompanyID   string
	Email       string
	Admin       bool
	Permissions map[string]bool
}

// Identity converts verified claims into an access snapshot. Unparsable IDs
// yield zero UUIDs; downstream default-deny takes care of the rest.
func (c Claims) Identity() access.Identity {
	uid, _ := uuid.Parse(c.UserID)
	cid, _ := uuid.Parse(c.CompanyID)
	perms := make(map[string]bool, len(c.Permissions))
	for k, v := range c.Permissions {
		perms[k] = v
	}
	return access.Identity{ID: uid, CompanyID: cid, Admin: c.Admin, Permissions: perms}
}

func claimsFromMap(mc jwt.MapClaims) Claims {
	c := Claims{Permissions: map[string]bool{}}
	if sub, err := mc.GetSubject(); err == nil {
		c.UserID = sub
	}
	if s, ok := mc["company_id"].(string); ok {
		c.CompanyID = s
	}
	if s, ok := mc["email"].(string); ok {
		c.Email = s
	}
	if b, ok := mc["admin"].(bool); ok {
		c.Admin = b
	}
	if m, ok := mc["permissions"].(map[string]any); ok {
		for k, v := range m {
			if b, ok := v.(bool); ok {
				c.Permissions[k] = b
			}
		}
	}
	return c
}
