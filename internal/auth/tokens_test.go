package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booktracker/internal/entities"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testUser() *entities.User {
	return &entities.User{ID: 7, Email: "a@x.com"}
}

func TestIssuer_SignAndParse(t *testing.T) {
	issuer := NewIssuer(testSecret, "booktracker-test", time.Hour)

	signed, claims, err := issuer.Sign(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, claims.ID)

	parsed, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "7", parsed.Subject)
	assert.Equal(t, "a@x.com", parsed.Email)
	assert.Equal(t, TokenScope, parsed.Scope)
	assert.Equal(t, claims.ID, parsed.ID)

	userID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestIssuer_Parse_WrongSecret(t *testing.T) {
	issuer := NewIssuer(testSecret, "booktracker-test", time.Hour)
	other := NewIssuer([]byte("another-secret-another-secret-00"), "booktracker-test", time.Hour)

	signed, _, err := issuer.Sign(testUser())
	require.NoError(t, err)

	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Parse_Malformed(t *testing.T) {
	issuer := NewIssuer(testSecret, "booktracker-test", time.Hour)

	_, err := issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Parse_Expired(t *testing.T) {
	issuer := NewIssuer(testSecret, "booktracker-test", -time.Minute)

	signed, _, err := issuer.Sign(testUser())
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_ParseAllowExpired(t *testing.T) {
	issuer := NewIssuer(testSecret, "booktracker-test", -time.Minute)

	signed, claims, err := issuer.Sign(testUser())
	require.NoError(t, err)

	// Logout still needs the jti from an expired token
	parsed, err := issuer.ParseAllowExpired(signed)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, parsed.ID)
}
