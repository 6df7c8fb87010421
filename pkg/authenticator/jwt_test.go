package authenticator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/stretchr/testify/require"
)

var testAuthConfigs = config.AuthConfigs{
	Issuer:          "questd",
	TokenSecret:     "secret",
	TokenExpiration: time.Hour,
}

func newTestEngine() (*hmacTokenEngine[model.AccessToken], *dateutil.ManualClock) {
	clock := dateutil.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return newTokenEngineWithClock[model.AccessToken](testAuthConfigs, clock), clock
}

func TestTokenEngine_AccessToken(t *testing.T) {
	engine, _ := newTestEngine()

	token, err := engine.Generate("user1", model.AccessToken{
		UserID:  "user1",
		GuildID: "guild1",
		RoleIDs: []string{"role1", "role2"},
	})
	require.NoError(t, err)

	info, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", info.UserID)
	require.Equal(t, "guild1", info.GuildID)
	require.Equal(t, []string{"role1", "role2"}, info.RoleIDs)
	require.False(t, info.Administrator)

	_, err = engine.Generate("", model.AccessToken{})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenEngine_Expiration(t *testing.T) {
	engine, clock := newTestEngine()

	token, err := engine.Generate("user1", model.AccessToken{UserID: "user1"})
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = engine.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = engine.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)

	clock.Set(time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	_, err = engine.Verify(token)
	require.ErrorIs(t, err, ErrTokenNotActive)
}

func TestTokenEngine_Rejects(t *testing.T) {
	engine, clock := newTestEngine()
	token, err := engine.Generate("user1", model.AccessToken{UserID: "user1"})
	require.NoError(t, err)

	cfg := testAuthConfigs
	cfg.TokenSecret = "other"
	_, err = newTokenEngineWithClock[model.AccessToken](cfg, clock).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	cfg = testAuthConfigs
	cfg.Issuer = "other"
	_, err = newTokenEngineWithClock[model.AccessToken](cfg, clock).Verify(token)
	require.ErrorIs(t, err, ErrIssuerMismatch)

	_, err = engine.Verify("not a token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Only HS256 is accepted, whatever the token claims.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims[model.AccessToken]{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "questd",
			Subject:   "user1",
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = engine.Verify(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims[model.AccessToken]{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "questd",
			Subject:   "user1",
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = engine.Verify(hs512)
	require.ErrorIs(t, err, ErrInvalidToken)
}
