// Package tokens stores the records of issued bearer tokens, keyed by the
// jti claim. The token repository is the single source of truth for
// revocation state: a signed token only authorizes a request while its row
// is still active.
package tokens

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/entities"
)

var (
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenNotActive = errors.New("token is not active")
)

// Repository handles issued-token database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tokens repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateToken records a freshly issued token.
func (r *Repository) CreateToken(ctx context.Context, token *entities.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetTokenByJTI retrieves an issued-token record by its jti claim.
func (r *Repository) GetTokenByJTI(ctx context.Context, jti string) (*entities.Token, error) {
	var token entities.Token
	err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// RevokeToken transitions an active token to revoked. Revocation is a
// single UPDATE guarded on the current status, so a token can only move to
// revoked once. Returns ErrTokenNotActive when the token was already
// revoked, ErrTokenNotFound when the jti is unknown.
func (r *Repository) RevokeToken(ctx context.Context, jti string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entities.Token{}).
		Where("jti = ? AND status = ?", jti, entities.TokenStatusActive).
		Updates(map[string]any{
			"status":     entities.TokenStatusRevoked,
			"revoked_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish unknown from already-revoked for the caller.
		var count int64
		if err := r.db.WithContext(ctx).Model(&entities.Token{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTokenNotFound
		}
		return ErrTokenNotActive
	}
	return nil
}

// DeleteExpiredTokens removes records whose expiry has passed. Revoked rows
// are kept until they expire so revocation stays enforceable for the whole
// token lifetime.
func (r *Repository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entities.Token{})
	return result.RowsAffected, result.Error
}
