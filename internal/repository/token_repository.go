package repository

import (
	"context"

	"gorm.io/gorm"

	"meals_on_wheels/internal/models"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	// IsActive reports whether the token with the given jti exists, is not
	// revoked and has not expired.
	IsActive(ctx context.Context, id string) (bool, error)
	// RevokeAllForUser marks every unrevoked token of the user revoked and
	// returns how many were affected.
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
}

type GormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

func (r *GormTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *GormTokenRepository) IsActive(ctx context.Context, id string) (bool, error) {
	var token models.AccessToken
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		if translate(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return token.IsValid(), nil
}

func (r *GormTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.AccessToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return res.RowsAffected, res.Error
}
