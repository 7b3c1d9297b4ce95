package service

import (
	"context"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var (
	ErrAspirationNotFound      = repository.ErrAspirationNotFound
	ErrInvalidStatusTransition = domain.ErrInvalidStatusTransition
)

type AspirationRepository interface {
	Create(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error)
	FindByID(ctx context.Context, id uint) (domain.Aspiration, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]domain.Aspiration, error)
	FindAll(ctx context.Context, status string) ([]domain.Aspiration, error)
	Update(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error)
}

type AspirationService struct {
	repo     AspirationRepository
	userRepo UserRepository
}

func NewAspirationService(repo AspirationRepository, userRepo UserRepository) *AspirationService {
	return &AspirationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *AspirationService) Submit(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error) {
	created, err := s.repo.Create(ctx, aspiration)
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.redact(created, aspiration.AuthorID, false), nil
}

func (s *AspirationService) ListMine(ctx context.Context, authorID uint) ([]domain.Aspiration, error) {
	aspirations, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByAuthor -> %w", err)
	}

	return aspirations, nil
}

// ListAll is the board view; author identity is redacted on anonymous
// aspirations unless the viewer is an admin.
func (s *AspirationService) ListAll(ctx context.Context, viewer domain.User, status string) ([]domain.Aspiration, error) {
	aspirations, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	names := make(map[uint]string)
	out := make([]domain.Aspiration, 0, len(aspirations))
	for _, a := range aspirations {
		a = s.redact(a, viewer.ID, viewer.Role == domain.RoleAdmin)
		if a.AuthorID != 0 {
			a.AuthorName = s.authorName(ctx, names, a.AuthorID)
		}
		out = append(out, a)
	}

	return out, nil
}

// authorName resolves and memoizes the display name; a missing author
// renders empty rather than failing the listing.
func (s *AspirationService) authorName(ctx context.Context, cache map[uint]string, authorID uint) string {
	if name, ok := cache[authorID]; ok {
		return name
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		cache[authorID] = ""
		return ""
	}

	cache[authorID] = author.Name

	return author.Name
}

// Respond records a board response and advances the status. Transitions run
// forward only: open -> in_review -> resolved.
func (s *AspirationService) Respond(ctx context.Context, id uint, status, responseNote string) (domain.Aspiration, error) {
	aspiration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !aspiration.CanTransitionTo(status) {
		return domain.Aspiration{}, ErrInvalidStatusTransition
	}

	aspiration.Status = status
	if responseNote != "" {
		aspiration.Response = responseNote
	}

	updated, err := s.repo.Update(ctx, aspiration)
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *AspirationService) redact(a domain.Aspiration, viewerID uint, viewerIsAdmin bool) domain.Aspiration {
	if a.IsAnonymous && a.AuthorID != viewerID && !viewerIsAdmin {
		a.AuthorID = 0
		a.AuthorName = ""
	}

	return a
}
