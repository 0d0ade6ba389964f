package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/mrlokans/booktracker/internal/config"
	"github.com/mrlokans/booktracker/internal/database/tokens"
	"github.com/mrlokans/booktracker/internal/database/users"
	"github.com/mrlokans/booktracker/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrEmailTaken       = errors.New("email is already registered")

	// ErrInvalidCredentials covers both unknown email and password mismatch
	// so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrMalformedToken = errors.New("missing or malformed token")
)

// Token resolution failures surfaced by logout.
var (
	ErrTokenNotFound  = tokens.ErrTokenNotFound
	ErrTokenNotActive = tokens.ErrTokenNotActive
)

// TokenResponse is the OAuth2 password-grant response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Service handles registration, credential verification, and the issued
// token lifecycle. State machine per token: active until expiry or
// revocation; both terminal states are absorbing.
type Service struct {
	users  *users.Repository
	tokens *tokens.Repository
	issuer *Issuer
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(userRepo *users.Repository, tokenRepo *tokens.Repository, issuer *Issuer, cfg config.Auth) *Service {
	return &Service{
		users:  userRepo,
		tokens: tokenRepo,
		issuer: issuer,
		config: cfg,
	}
}

// Register creates a new identity with a securely hashed password. No token
// is issued; registration does not imply login.
func (s *Service) Register(ctx context.Context, email, password string) (*entities.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// Validate email format and length (RFC 5321 limit is 254)
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the credentials and issues a bearer token bound to
// the identity. Unknown email and wrong password yield the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	signed, claims, err := s.issuer.Sign(user)
	if err != nil {
		return nil, err
	}

	record := &entities.Token{
		JTI:       claims.ID,
		UserID:    user.ID,
		Status:    entities.TokenStatusActive,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.tokens.CreateToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.issuer.Expiry().Seconds()),
		Scope:       claims.Scope,
	}, nil
}

// ValidateToken checks a presented bearer token and returns the associated
// user and claims. Fails closed: malformed, expired, revoked, and
// signature-invalid tokens are all rejected.
func (s *Service) ValidateToken(ctx context.Context, presented string) (*entities.User, *Claims, error) {
	if presented == "" {
		return nil, nil, ErrInvalidToken
	}

	claims, err := s.issuer.Parse(presented)
	if err != nil {
		return nil, nil, err
	}

	record, err := s.tokens.GetTokenByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}

	now := time.Now()
	if record.Status == entities.TokenStatusRevoked {
		return nil, nil, ErrTokenRevoked
	}
	if !record.Active(now) {
		return nil, nil, ErrTokenExpired
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}

	return user, claims, nil
}

// Logout revokes the presented token. The signature must still verify so
// the jti can be trusted, but an expired token may still be revoked.
func (s *Service) Logout(ctx context.Context, presented string) error {
	if presented == "" {
		return ErrMalformedToken
	}

	claims, err := s.issuer.ParseAllowExpired(presented)
	if err != nil {
		return ErrMalformedToken
	}

	return s.tokens.RevokeToken(ctx, claims.ID)
}
