// Package auth validates bearer tokens for user-scoped endpoints.
//
// Tokens are HS256 JWTs issued by the account service that owns sign-in.
// GenerateAccessToken exists for local development and tests.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Defaults applied by NewJWTService.
const (
	DefaultAccessTokenExpiry = time.Hour
	DefaultLeeway            = 30 * time.Second
)

// Token validation errors. Every rejection wraps ErrInvalidAccessToken
// except expiry, which callers report separately.
var (
	ErrInvalidAccessToken = errors.New("invalid access token")
	ErrAccessTokenExpired = errors.New("access token has expired")
	ErrMissingUserID      = errors.New("access token has no user id")
)

// JWTClaims are the claims carried by access tokens.
type JWTClaims struct {
	jwt.RegisteredClaims

	// UserID overrides the subject when present.
	UserID string `json:"uid,omitempty"`
}

// User returns the authenticated user: uid, else sub.
func (c *JWTClaims) User() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// JWTConfig configures a JWTService.
type JWTConfig struct {
	SigningKey string

	// PreviousKeys still verify tokens during a key rollover. New tokens
	// are always signed with SigningKey.
	PreviousKeys []string

	Issuer   string
	Audience string

	// Expiry is the lifetime of generated tokens.
	Expiry time.Duration

	// Leeway tolerates clock skew on exp, nbf and iat.
	Leeway time.Duration

	Now func() time.Time
}

// JWTService signs and verifies access tokens.
type JWTService struct {
	signingKey []byte
	verifyKeys [][]byte
	parser     *jwt.Parser
	issuer     string
	audience   string
	expiry     time.Duration
	now        func() time.Time
}

// NewJWTService creates a JWTService. Empty previous keys are skipped.
func NewJWTService(cfg JWTConfig) *JWTService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultAccessTokenExpiry
	}
	if cfg.Leeway <= 0 {
		cfg.Leeway = DefaultLeeway
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	keys := [][]byte{[]byte(cfg.SigningKey)}
	for _, k := range cfg.PreviousKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return &JWTService{
		signingKey: []byte(cfg.SigningKey),
		verifyKeys: keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithTimeFunc(cfg.Now),
		),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   cfg.Expiry,
		now:      cfg.Now,
	}
}

// GenerateAccessToken signs a token for userID and returns it with its expiry.
func (s *JWTService) GenerateAccessToken(userID string) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, ErrMissingUserID
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken verifies the signature against the current key and
// then each previous key, and checks issuer, audience and time claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	var lastErr error
	for _, key := range s.verifyKeys {
		claims := &JWTClaims{}
		_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		switch {
		case err == nil:
			return claims, nil
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			lastErr = err
			continue
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrAccessTokenExpired
		default:
			return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, lastErr)
}

// Authenticate implements the middleware's TokenAuthenticator.
func (s *JWTService) Authenticate(tokenString string) (string, error) {
	claims, err := s.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.User() == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidAccessToken, ErrMissingUserID)
	}
	return claims.User(), nil
}
