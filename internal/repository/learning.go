package repository

import (
	"context"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound = dao.ErrCategoryNotFound
	ErrCategoryNotEmpty = dao.ErrCategoryNotEmpty
	ErrMaterialNotFound = dao.ErrMaterialNotFound
)

type LearningDAO interface {
	InsertCategory(ctx context.Context, category dao.LearningCategory) (dao.LearningCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.LearningCategory, error)
	FindAllCategories(ctx context.Context) ([]dao.LearningCategory, error)
	DeleteCategory(ctx context.Context, id uint) error
	InsertMaterial(ctx context.Context, material dao.LearningMaterial) (dao.LearningMaterial, error)
	FindMaterialByID(ctx context.Context, id uint) (dao.LearningMaterial, error)
	FindMaterialsByCategory(ctx context.Context, categoryID uint) ([]dao.LearningMaterial, error)
	UpdateMaterial(ctx context.Context, material dao.LearningMaterial) (dao.LearningMaterial, error)
	DeleteMaterial(ctx context.Context, id uint) error
}

type LearningRepository struct {
	dao LearningDAO
}

func NewLearningRepository(dao LearningDAO) *LearningRepository {
	return &LearningRepository{
		dao: dao,
	}
}

func (r *LearningRepository) CreateCategory(ctx context.Context, category domain.LearningCategory) (domain.LearningCategory, error) {
	created, err := r.dao.InsertCategory(ctx, dao.LearningCategory{
		Name:     category.Name,
		ParentID: category.ParentID,
	})
	if err != nil {
		return domain.LearningCategory{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *LearningRepository) FindCategoryByID(ctx context.Context, id uint) (domain.LearningCategory, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.LearningCategory{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *LearningRepository) FindAllCategories(ctx context.Context) ([]domain.LearningCategory, error) {
	found, err := r.dao.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllCategories -> %w", err)
	}

	categories := make([]domain.LearningCategory, 0, len(found))
	for _, c := range found {
		categories = append(categories, r.categoryDaoToDomain(c))
	}

	return categories, nil
}

func (r *LearningRepository) DeleteCategory(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCategory -> %w", err)
	}

	return nil
}

func (r *LearningRepository) CreateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error) {
	created, err := r.dao.InsertMaterial(ctx, r.materialDomainToDao(material))
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("r.dao.InsertMaterial -> %w", err)
	}

	return r.materialDaoToDomain(created), nil
}

func (r *LearningRepository) FindMaterialByID(ctx context.Context, id uint) (domain.LearningMaterial, error) {
	found, err := r.dao.FindMaterialByID(ctx, id)
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("r.dao.FindMaterialByID -> %w", err)
	}

	return r.materialDaoToDomain(found), nil
}

func (r *LearningRepository) FindMaterialsByCategory(ctx context.Context, categoryID uint) ([]domain.LearningMaterial, error) {
	found, err := r.dao.FindMaterialsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMaterialsByCategory -> %w", err)
	}

	materials := make([]domain.LearningMaterial, 0, len(found))
	for _, m := range found {
		materials = append(materials, r.materialDaoToDomain(m))
	}

	return materials, nil
}

func (r *LearningRepository) UpdateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error) {
	updated, err := r.dao.UpdateMaterial(ctx, r.materialDomainToDao(material))
	if err != nil {
		return domain.LearningMaterial{}, fmt.Errorf("r.dao.UpdateMaterial -> %w", err)
	}

	return r.materialDaoToDomain(updated), nil
}

func (r *LearningRepository) DeleteMaterial(ctx context.Context, id uint) error {
	if err := r.dao.DeleteMaterial(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteMaterial -> %w", err)
	}

	return nil
}

func (r *LearningRepository) categoryDaoToDomain(c dao.LearningCategory) domain.LearningCategory {
	return domain.LearningCategory{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *LearningRepository) materialDomainToDao(m domain.LearningMaterial) dao.LearningMaterial {
	return dao.LearningMaterial{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Description: m.Description,
		URL:         m.URL,
		FilePath:    m.FilePath,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *LearningRepository) materialDaoToDomain(m dao.LearningMaterial) domain.LearningMaterial {
	return domain.LearningMaterial{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Description: m.Description,
		URL:         m.URL,
		FilePath:    m.FilePath,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
