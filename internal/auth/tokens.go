package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mrlokans/booktracker/internal/entities"
)

// TokenScope is the scope set embedded in every issued access token.
// Scopes are fixed; there is no per-client scope negotiation.
const TokenScope = "email profile api"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carried by a signed access token. Subject holds the user ID, JTI
// keys the revocation record.
type Claims struct {
	Email string `json:"email,omitempty"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user primary key.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewIssuer creates a token issuer with the given HMAC secret.
func NewIssuer(secret []byte, issuer string, expiry time.Duration) *Issuer {
	return &Issuer{secret: secret, issuer: issuer, expiry: expiry}
}

// Expiry returns the configured access token lifetime.
func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}

// Sign issues a signed access token for the user and returns it together
// with the embedded claims.
func (i *Issuer) Sign(user *entities.User) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Scope: TokenScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature and registered claims of a presented token.
// Returns ErrTokenExpired for tokens past their exp claim, ErrInvalidToken
// for anything else that fails verification.
func (i *Issuer) Parse(presented string) (*Claims, error) {
	return i.parse(presented)
}

// ParseAllowExpired verifies the signature but accepts an expired token.
// Used by logout, which must resolve the revocation record regardless of
// expiry.
func (i *Issuer) ParseAllowExpired(presented string) (*Claims, error) {
	return i.parse(presented, jwt.WithoutClaimsValidation())
}

func (i *Issuer) parse(presented string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(presented, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
