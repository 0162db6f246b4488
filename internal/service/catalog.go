package service

import (
	"context"

	"eco-electric-api/internal/model"
	"eco-electric-api/internal/repository"
)

// CatalogService covers the plain resource records around the order workflow:
// tools and customer reviews.
type CatalogService interface {
	ListTools(ctx context.Context) ([]*model.Tool, error)
	GetTool(ctx context.Context, id uint) (*model.Tool, error)
	AddTool(ctx context.Context, tool *model.Tool) error
	DeleteTool(ctx context.Context, id uint) (bool, error)
	DecrementToolQuantity(ctx context.Context, id uint, quantity int) (*model.Tool, error)

	ListReviews(ctx context.Context) ([]*model.Review, error)
	AddReview(ctx context.Context, review *model.Review) error
}

type catalogServiceImpl struct {
	toolRepo   repository.ToolRepository
	reviewRepo repository.ReviewRepository
}

func NewCatalogService(toolRepo repository.ToolRepository, reviewRepo repository.ReviewRepository) CatalogService {
	return &catalogServiceImpl{
		toolRepo:   toolRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *catalogServiceImpl) ListTools(ctx context.Context) ([]*model.Tool, error) {
	return s.toolRepo.List(ctx)
}

func (s *catalogServiceImpl) GetTool(ctx context.Context, id uint) (*model.Tool, error) {
	return s.toolRepo.FindByID(ctx, id)
}

func (s *catalogServiceImpl) AddTool(ctx context.Context, tool *model.Tool) error {
	return s.toolRepo.Create(ctx, tool)
}

func (s *catalogServiceImpl) DeleteTool(ctx context.Context, id uint) (bool, error) {
	return s.toolRepo.Delete(ctx, id)
}

func (s *catalogServiceImpl) DecrementToolQuantity(ctx context.Context, id uint, quantity int) (*model.Tool, error) {
	if err := s.toolRepo.DecrementAvailable(ctx, id, quantity); err != nil {
		return nil, err
	}

	return s.toolRepo.FindByID(ctx, id)
}

func (s *catalogServiceImpl) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return s.reviewRepo.List(ctx)
}

func (s *catalogServiceImpl) AddReview(ctx context.Context, review *model.Review) error {
	return s.reviewRepo.Create(ctx, review)
}
