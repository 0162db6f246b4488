package repository

import (
	"context"
	"time"

	"eco-electric-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindRole(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, email string, role string) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

// Upsert writes the profile keyed by email. The role column is never touched
// here so a profile update cannot clobber an admin grant.
func (r *userRepoImpl) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       user.Name,
			"phone":      user.Phone,
			"address":    user.Address,
			"education":  user.Education,
			"updated_at": time.Now(),
		}),
	}).Create(user).Error

	if err != nil {
		return nil, err
	}

	return r.FindByEmail(ctx, user.Email)
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindRole is a fresh single-key read on every call; a missing user reads as
// an empty role.
func (r *userRepoImpl) FindRole(ctx context.Context, email string) (string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Limit(1).
		Pluck("role", &roles).
		Error

	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", nil
	}

	return roles[0], nil
}

func (r *userRepoImpl) SetRole(ctx context.Context, email string, role string) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepoImpl) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
