package service

import (
	"context"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var (
	ErrCategoryNotFound = repository.ErrCategoryNotFound
	ErrCategoryNotEmpty = repository.ErrCategoryNotEmpty
	ErrMaterialNotFound = repository.ErrMaterialNotFound
)

type LearningRepository interface {
	CreateCategory(ctx context.Context, category domain.LearningCategory) (domain.LearningCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.LearningCategory, error)
	FindAllCategories(ctx context.Context) ([]domain.LearningCategory, error)
	DeleteCategory(ctx context.Context, id uint) error
	CreateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error)
	FindMaterialByID(ctx context.Context, id uint) (domain.LearningMaterial, error)
	FindMaterialsByCategory(ctx context.Context, categoryID uint) ([]domain.LearningMaterial, error)
	UpdateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error)
	DeleteMaterial(ctx context.Context, id uint) error
}

type LearningService struct {
	repo LearningRepository
}

func NewLearningService(repo LearningRepository) *LearningService {
	return &LearningService{
		repo: repo,
	}
}

func (s *LearningService) CreateCategory(ctx context.Context, category domain.LearningCategory) (domain.LearningCategory, error) {
	if category.ParentID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *category.ParentID); err != nil {
			return domain.LearningCategory{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
		}
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.LearningCategory{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

// GetCategoryTree loads the whole adjacency list once and assembles the
// nested forest in memory.
func (s *LearningService) GetCategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := s.repo.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllCategories -> %w", err)
	}

	return domain.BuildCategoryTree(categories), nil
}

func (s *LearningService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}

	return nil
}

func (s *LearningService) CreateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error) {
	if _, err := s.repo.FindCategoryByID(ctx, material.CategoryID); err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}

	created, err := s.repo.CreateMaterial(ctx, material)
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("s.repo.CreateMaterial -> %w", err)
	}

	return created, nil
}

func (s *LearningService) GetMaterial(ctx context.Context, id uint) (domain.LearningMaterial, error) {
	material, err := s.repo.FindMaterialByID(ctx, id)
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("s.repo.FindMaterialByID -> %w", err)
	}

	return material, nil
}

func (s *LearningService) ListMaterials(ctx context.Context, categoryID uint) ([]domain.LearningMaterial, error) {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}

	materials, err := s.repo.FindMaterialsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMaterialsByCategory -> %w", err)
	}

	return materials, nil
}

func (s *LearningService) UpdateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error) {
	existing, err := s.repo.FindMaterialByID(ctx, material.ID)
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("s.repo.FindMaterialByID -> %w", err)
	}

	material.UploadedBy = existing.UploadedBy
	material.CreatedAt = existing.CreatedAt

	updated, err := s.repo.UpdateMaterial(ctx, material)
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("s.repo.UpdateMaterial -> %w", err)
	}

	return updated, nil
}

func (s *LearningService) DeleteMaterial(ctx context.Context, id uint) error {
	if err := s.repo.DeleteMaterial(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteMaterial -> %w", err)
	}

	return nil
}
