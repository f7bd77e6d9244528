package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// AcceptConfig configures verify-only acceptance of an external issuer's
// tokens.
type AcceptConfig struct {
	Issuer   string
	Audience string // expected audience for this service (single value)
	JWKSURL  string
	Skew     time.Duration
	CacheTTL time.Duration // minimum interval between JWKS refreshes
}

func (c AcceptConfig) defaulted() AcceptConfig {
	if c.Skew <= 0 {
		c.Skew = 30 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	return c
}

// Verifier validates bearer tokens against the issuer's JWKS.
type Verifier struct {
	cfg    AcceptConfig
	cache  *jwk.Cache
	static jwk.Set // fixed key set, bypasses fetching (tests)
}

// NewVerifier builds a verifier that fetches and caches the issuer's JWKS.
// ctx bounds the lifetime of the background refresher.
func NewVerifier(ctx context.Context, cfg AcceptConfig) (*Verifier, error) {
	cfg = cfg.defaulted()
	if strings.TrimSpace(cfg.JWKSURL) == "" {
		return nil, errors.New("token: missing JWKS URL")
	}
	cache := jwk.NewCache(ctx)
	if err := cache.Register(cfg.JWKSURL, jwk.WithMinRefreshInterval(cfg.CacheTTL)); err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg, cache: cache}, nil
}

// NewStaticVerifier verifies against a fixed key set without any fetching.
func NewStaticVerifier(cfg AcceptConfig, keys jwk.Set) *Verifier {
	return &Verifier{cfg: cfg.defaulted(), static: keys}
}

func (v *Verifier) keySet(ctx context.Context) (jwk.Set, error) {
	if v.static != nil {
		return v.static, nil
	}
	return v.cache.Get(ctx, v.cfg.JWKSURL)
}

// Verify parses and validates raw and returns the dashkit claims.
func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	set, err := v.keySet(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("token: fetch keys: %w", err)
	}

	keyfunc := func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token: missing kid header")
		}
		k, ok := set.LookupKeyID(kid)
		if !ok {
			return nil, fmt.Errorf("token: unknown kid %q", kid)
		}
		var pub any
		if err := k.Raw(&pub); err != nil {
			return nil, err
		}
		return pub, nil
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(v.cfg.Skew),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, mc, keyfunc, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("token: invalid token: %w", err)
	}
	if !parsed.Valid {
		return Claims{}, errors.New("token: invalid token")
	}
	return claimsFromMap(mc), nil
}
