package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("unit-test-secret")

	token, err := issuer.Issue("account-123", "vendor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.Subject)
	assert.Equal(t, "vendor", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue("account-123", "customer")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("unit-test-secret")
	issuer.TTL = -time.Hour

	token, err := issuer.Issue("account-123", "customer")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("unit-test-secret").Parse("not.a.token")
	assert.Error(t, err)
}
