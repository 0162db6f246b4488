package repository

import (
	"context"

	"eco-electric-api/internal/model"

	"gorm.io/gorm"
)

type ToolRepository interface {
	List(ctx context.Context) ([]*model.Tool, error)
	FindByID(ctx context.Context, id uint) (*model.Tool, error)
	Create(ctx context.Context, tool *model.Tool) error
	Delete(ctx context.Context, id uint) (bool, error)
	DecrementAvailable(ctx context.Context, id uint, quantity int) error
}

type toolRepoImpl struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) ToolRepository {
	return &toolRepoImpl{
		db: db,
	}
}

func (r *toolRepoImpl) List(ctx context.Context) ([]*model.Tool, error) {
	var tools []*model.Tool
	err := r.db.WithContext(ctx).Find(&tools).Error
	if err != nil {
		return nil, err
	}

	return tools, nil
}

func (r *toolRepoImpl) FindByID(ctx context.Context, id uint) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tool).Error

	if err != nil {
		return nil, err
	}

	return &tool, nil
}

func (r *toolRepoImpl) Create(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *toolRepoImpl) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Tool{}, id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// DecrementAvailable applies a single atomic decrement. It is not coordinated
// with order creation; callers issue it as a separate update.
func (r *toolRepoImpl) DecrementAvailable(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Tool{}).
		Where("id = ?", id).
		Update("available_quantity", gorm.Expr("available_quantity - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
