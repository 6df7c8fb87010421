package authenticator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/pkg/dateutil"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenNotActive = errors.New("token is not active yet")
	ErrIssuerMismatch = errors.New("token issuer mismatch")
)

type claims[T any] struct {
	jwt.RegisteredClaims
	Object T `json:"obj,omitempty"`
}

// hmacTokenEngine signs tokens with HS256. Time claims are checked against its own clock rather
// than the jwt package clock.
type hmacTokenEngine[T any] struct {
	issuer     string
	secret     []byte
	expiration time.Duration
	clock      dateutil.Clock
	parser     *jwt.Parser
}

func NewTokenEngine[T any](cfg config.AuthConfigs) *hmacTokenEngine[T] {
	return newTokenEngineWithClock[T](cfg, dateutil.NewRealClock())
}

func newTokenEngineWithClock[T any](cfg config.AuthConfigs, clock dateutil.Clock) *hmacTokenEngine[T] {
	return &hmacTokenEngine[T]{
		issuer:     cfg.Issuer,
		secret:     []byte(cfg.TokenSecret),
		expiration: cfg.TokenExpiration,
		clock:      clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

func (e *hmacTokenEngine[T]) Generate(sub string, obj T) (string, error) {
	if sub == "" {
		return "", fmt.Errorf("%w: subject is required", ErrInvalidToken)
	}

	now := e.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims[T]{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    e.issuer,
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
	})

	return token.SignedString(e.secret)
}

func (e *hmacTokenEngine[T]) Verify(token string) (T, error) {
	var zero T
	var parsed claims[T]
	_, err := e.parser.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return e.secret, nil
	})
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if parsed.Issuer != e.issuer {
		return zero, ErrIssuerMismatch
	}

	if parsed.Subject == "" || parsed.ExpiresAt == nil {
		return zero, fmt.Errorf("%w: sub and exp are required", ErrInvalidToken)
	}

	now := e.clock.Now()
	if !parsed.ExpiresAt.Time.After(now) {
		return zero, ErrTokenExpired
	}

	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time) {
		return zero, ErrTokenNotActive
	}

	return parsed.Object, nil
}
