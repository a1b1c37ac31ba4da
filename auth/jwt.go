package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of minted tokens when JWTConfig.TTL is zero.
const DefaultTokenTTL = 5 * time.Minute

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = 30 * time.Second

// JWTConfig configures token signing and validation.
type JWTConfig struct {
	// SigningKey is the shared HS256 secret.
	SigningKey []byte

	// Issuer is the iss claim. Checked by the Verifier when set.
	Issuer string

	// Audience is the aud claim. Checked by the Verifier when set.
	Audience string

	// Subject is the sub claim of minted tokens.
	Subject string

	// TTL is the lifetime of minted tokens.
	// Default: DefaultTokenTTL
	TTL time.Duration

	// Now is the clock. Default: time.Now
	Now func() time.Time
}

func (c JWTConfig) withDefaults() JWTConfig {
	if c.TTL <= 0 {
		c.TTL = DefaultTokenTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// TokenSource supplies bearer tokens for outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token returns the token.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrMissingCredentials
	}
	return string(t), nil
}

// Signer mints HS256 tokens and caches the current one until it nears
// expiry. It is safe for concurrent use.
type Signer struct {
	config JWTConfig

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewSigner creates a Signer.
func NewSigner(config JWTConfig) (*Signer, error) {
	if len(config.SigningKey) == 0 {
		return nil, ErrEmptySigningKey
	}
	return &Signer{config: config.withDefaults()}, nil
}

// Token returns a valid token, minting a new one when the cached token is
// missing or within refreshMargin of expiry.
func (s *Signer) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Now()
	if s.token != "" && now.Add(refreshMargin).Before(s.expires) {
		return s.token, nil
	}

	expires := now.Add(s.config.TTL)
	claims := jwt.RegisteredClaims{
		Issuer:    s.config.Issuer,
		Subject:   s.config.Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	if s.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.Audience}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.SigningKey)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	s.token = token
	s.expires = expires
	return token, nil
}

// Verifier validates tokens minted with the same JWTConfig.
type Verifier struct {
	config JWTConfig
	parser *jwt.Parser
}

// NewVerifier creates a Verifier.
func NewVerifier(config JWTConfig) (*Verifier, error) {
	if len(config.SigningKey) == 0 {
		return nil, ErrEmptySigningKey
	}
	config = config.withDefaults()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(config.Now),
		jwt.WithExpirationRequired(),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	if config.Audience != "" {
		opts = append(opts, jwt.WithAudience(config.Audience))
	}

	return &Verifier{config: config, parser: jwt.NewParser(opts...)}, nil
}

// Verify parses and validates tokenString.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingCredentials
	}

	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.config.SigningKey, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	id := &Identity{
		Principal: claims.Subject,
		Issuer:    claims.Issuer,
		Audience:  claims.Audience,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

var (
	_ TokenSource = (*Signer)(nil)
	_ TokenSource = StaticToken("")
)
