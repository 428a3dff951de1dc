package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"meals_on_wheels/internal/models"
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateAccount writes user, profile and rec in one transaction.
	CreateAccount(ctx context.Context, user *models.User, profile *models.Profile, rec models.RoleRecord) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID loads the user with its profile and role record.
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) CreateAccount(ctx context.Context, user *models.User, profile *models.Profile, rec models.RoleRecord) error {
	if rec.Role() != user.Type {
		return fmt.Errorf("role record %q does not match user type %q", rec.Role(), user.Type)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Relations are written explicitly below.
		if err := tx.Omit("Profile", "Member", "Caregiver", "Partner", "Volunteer", "Donor").Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		rec.AttachTo(user.ID)
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("create %s record: %w", rec.Role(), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	user.Profile = profile
	user.Attach(rec)
	return nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.loadRoleRecord(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// loadRoleRecord fetches only the relation matching user.Type.
func (r *GormUserRepository) loadRoleRecord(ctx context.Context, user *models.User) error {
	var rec models.RoleRecord
	switch user.Type {
	case models.RoleMember:
		rec = &models.Member{}
	case models.RoleCaregiver:
		rec = &models.Caregiver{}
	case models.RolePartner:
		rec = &models.Partner{}
	case models.RoleVolunteer:
		rec = &models.Volunteer{}
	case models.RoleDonor:
		rec = &models.Donor{}
	default:
		return nil
	}

	err := r.db.WithContext(ctx).Where("user_id = ?", user.ID).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user.Attach(rec)
	return nil
}
