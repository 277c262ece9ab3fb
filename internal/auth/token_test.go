package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret!"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tm := NewTokenManager(testSecret, 0, WithClock(fixedClock(now.Add(time.Minute))))

	token, issued, err := tm.Issue("r1", now)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tm.TTL())

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "r1", claims.Username())
	assert.True(t, now.Equal(claims.IssuedAt.Time))
	assert.Equal(t, 10*time.Hour, claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time))
	assert.True(t, issued.ExpiresAt.Time.Equal(claims.ExpiresAt.Time))
}

func TestIssueRequiresSubject(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	_, _, err := tm.Issue("", time.Now())
	assert.Error(t, err)
}

func TestDecodeRejectsTamperedSignature(t *testing.T) {
	now := time.Now()
	tm := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(now)))
	token, _, err := tm.Issue("c1", now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	for i := range sig {
		tampered := append([]byte(nil), sig...)
		tampered[i] ^= 0x01
		forged := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(tampered)

		_, err := tm.Decode(forged)
		require.Error(t, err, "byte %d", i)
		assert.ErrorIs(t, err, ErrTokenSignature)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestDecodeRejectsForgedClaims(t *testing.T) {
	now := time.Now()
	tm := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(now)))
	victim, _, err := tm.Issue("c1", now)
	require.NoError(t, err)

	other := NewTokenManager("another-secret-another-secret-1234", time.Hour)
	attacker, _, err := other.Issue("r1", now)
	require.NoError(t, err)

	v := strings.Split(victim, ".")
	a := strings.Split(attacker, ".")
	spliced := v[0] + "." + a[1] + "." + v[2]

	_, err = tm.Decode(spliced)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, err = tm.Decode(attacker)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTokenManager(testSecret, 0, WithClock(fixedClock(issuedAt.Add(10*time.Hour))))

	token, _, err := tm.Issue("c1", issuedAt)
	require.NoError(t, err)

	_, err = tm.Decode(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrTokenSignature)

	stillValid := NewTokenManager(testSecret, 0, WithClock(fixedClock(issuedAt.Add(10*time.Hour-time.Second))))
	_, err = stillValid.Decode(token)
	assert.NoError(t, err)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c", "....."} {
		_, err := tm.Decode(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
		assert.NotErrorIs(t, err, ErrTokenExpired, "input %q", input)
	}
}

func TestDecodeRejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	tm := NewTokenManager(testSecret, time.Hour, WithClock(fixedClock(now)))
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "r1",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Decode(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tm.Decode(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRequiresExpiry(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "r1"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
