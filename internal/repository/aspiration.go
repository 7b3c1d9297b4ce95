package repository

import (
	"context"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var ErrAspirationNotFound = dao.ErrAspirationNotFound

type AspirationDAO interface {
	Insert(ctx context.Context, aspiration dao.Aspiration) (dao.Aspiration, error)
	FindByID(ctx context.Context, id uint) (dao.Aspiration, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]dao.Aspiration, error)
	FindAll(ctx context.Context, status string) ([]dao.Aspiration, error)
	Update(ctx context.Context, aspiration dao.Aspiration) (dao.Aspiration, error)
}

type AspirationRepository struct {
	dao AspirationDAO
}

func NewAspirationRepository(dao AspirationDAO) *AspirationRepository {
	return &AspirationRepository{
		dao: dao,
	}
}

func (r *AspirationRepository) Create(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error) {
	created, err := r.dao.Insert(ctx, dao.Aspiration{
		AuthorID:    aspiration.AuthorID,
		IsAnonymous: aspiration.IsAnonymous,
		Subject:     aspiration.Subject,
		Body:        aspiration.Body,
		Status:      domain.AspirationOpen,
	})
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AspirationRepository) FindByID(ctx context.Context, id uint) (domain.Aspiration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AspirationRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Aspiration, error) {
	found, err := r.dao.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAuthor -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *AspirationRepository) FindAll(ctx context.Context, status string) ([]domain.Aspiration, error) {
	found, err := r.dao.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *AspirationRepository) Update(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error) {
	updated, err := r.dao.Update(ctx, dao.Aspiration{
		ID:          aspiration.ID,
		AuthorID:    aspiration.AuthorID,
		IsAnonymous: aspiration.IsAnonymous,
		Subject:     aspiration.Subject,
		Body:        aspiration.Body,
		Status:      aspiration.Status,
		Response:    aspiration.Response,
		CreatedAt:   aspiration.CreatedAt,
	})
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *AspirationRepository) daoToDomain(a dao.Aspiration) domain.Aspiration {
	return domain.Aspiration{
		ID:          a.ID,
		AuthorID:    a.AuthorID,
		IsAnonymous: a.IsAnonymous,
		Subject:     a.Subject,
		Body:        a.Body,
		Status:      a.Status,
		Response:    a.Response,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r *AspirationRepository) daoSliceToDomain(aspirations []dao.Aspiration) []domain.Aspiration {
	out := make([]domain.Aspiration, 0, len(aspirations))
	for _, a := range aspirations {
		out = append(out, r.daoToDomain(a))
	}

	return out
}
