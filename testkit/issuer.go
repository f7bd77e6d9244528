// Package testkit provides a mock token issuer for testing applications
// built on dashkit. The issuer serves a JWKS over HTTP and signs tokens
// that verify against it, so integration tests run without a real auth
// server.
//
//	issuer := testkit.NewIssuer()
//	defer issuer.Close()
//
//	v, _ := token.NewVerifier(ctx, token.AcceptConfig{
//		Issuer:  issuer.URL(),
//		JWKSURL: issuer.JWKSURL(),
//	})
//	tok := issuer.CreateToken(userID, companyID, false, map[string]bool{"dashboard": true})
package testkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/facture-ma/dashkit/token"
)

// Issuer is a self-contained mock auth server. It generates an RSA key
// pair, serves the public half at /.well-known/jwks.json, and mints
// tokens carrying the dashboard claims.
type Issuer struct {
	server   *httptest.Server
	signer   *token.RSASigner
	audience string
}

// NewIssuer starts an issuer with the default "dashkit" audience.
// Call Close when done.
func NewIssuer() *Issuer {
	return NewIssuerWithAudience("dashkit")
}

// NewIssuerWithAudience starts an issuer whose tokens carry aud.
func NewIssuerWithAudience(audience string) *Issuer {
	signer, err := token.NewRSASigner(2048, "test-key-1")
	if err != nil {
		panic("testkit: create signer: " + err.Error())
	}

	iss := &Issuer{signer: signer, audience: audience}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/jwks.json", iss.handleJWKS)
	iss.server = httptest.NewServer(mux)
	return iss
}

// URL returns the issuer's base URL, used as the iss claim.
func (i *Issuer) URL() string { return i.server.URL }

// JWKSURL returns the key-set endpoint for AcceptConfig.JWKSURL.
func (i *Issuer) JWKSURL() string { return i.server.URL + "/.well-known/jwks.json" }

// Audience returns the audience tokens are minted with.
func (i *Issuer) Audience() string { return i.audience }

// Close shuts down the HTTP server.
func (i *Issuer) Close() {
	if i.server != nil {
		i.server.Close()
	}
}

func (i *Issuer) handleJWKS(w http.ResponseWriter, r *http.Request) {
	k := token.RSAPublicToJWK(i.signer.PublicKey(), i.signer.KID(), i.signer.Algorithm())
	token.ServeJWKS(w, r, token.JWKS{Keys: []token.JWK{k}})
}

// KeySet returns the issuer's public key as a jwk.Set, for
// token.NewStaticVerifier in tests that skip HTTP fetching.
func (i *Issuer) KeySet() jwk.Set {
	k, err := jwk.FromRaw(i.signer.PublicKey())
	if err != nil {
		panic("testkit: build jwk: " + err.Error())
	}
	_ = k.Set(jwk.KeyIDKey, i.signer.KID())
	_ = k.Set(jwk.AlgorithmKey, i.signer.Algorithm())
	set := jwk.NewSet()
	_ = set.AddKey(k)
	return set
}

// CreateToken mints a signed token with the standard dashboard claims:
// the caller's user and company, an admin flag, and a permission set.
func (i *Issuer) CreateToken(userID, companyID uuid.UUID, admin bool, perms map[string]bool) string {
	return i.CreateTokenWithClaims(userID, companyID, admin, perms, nil)
}

// CreateTokenWithClaims merges extra claims over the standard set before
// signing. Use it to override exp, iat, or aud in edge-case tests.
func (i *Issuer) CreateTokenWithClaims(userID, companyID uuid.UUID, admin bool, perms map[string]bool, extra map[string]any) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":         i.URL(),
		"aud":         i.audience,
		"sub":         userID.String(),
		"company_id":  companyID.String(),
		"admin":       admin,
		"permissions": perms,
		"exp":         now.Add(time.Hour).Unix(),
		"iat":         now.Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	signed, err := i.signer.Sign(context.Background(), claims)
	if err != nil {
		panic("testkit: sign token: " + err.Error())
	}
	return signed
}

// CreateExpiredToken mints a token whose exp is already in the past.
func (i *Issuer) CreateExpiredToken(userID, companyID uuid.UUID) string {
	return i.CreateTokenWithClaims(userID, companyID, false, nil, map[string]any{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
}
