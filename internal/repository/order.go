package repository

import (
	"context"
	"encoding/json"
	"time"

	"eco-electric-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ListByOwner(ctx context.Context, email string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	Replace(ctx context.Context, id uint, items json.RawMessage) (*model.Order, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) ListByOwner(ctx context.Context, email string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Replace upserts the order payload under the given identifier: an existing
// row keeps its owner and gets the new payload, an absent row is created.
// Retries of the same finalize call are idempotent.
func (r *orderRepoImpl) Replace(ctx context.Context, id uint, items json.RawMessage) (*model.Order, error) {
	// id 0 would make gorm auto-assign a fresh id instead of upserting
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"items":      []byte(items),
			"updated_at": time.Now(),
		}),
	}).Create(&model.Order{
		ID:    id,
		Items: items,
	}).Error

	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *orderRepoImpl) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Order{}, id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
