package domain

import (
	"errors"
	"time"
)

const (
	AspirationOpen     = "open"
	AspirationInReview = "in_review"
	AspirationResolved = "resolved"
)

var ErrInvalidStatusTransition = errors.New("invalid aspiration status transition")

// Aspiration is a complaint or suggestion submitted by a member.
// Anonymous aspirations hide the author from everyone but admins.
type Aspiration struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"author_id,omitempty"`
	AuthorName  string    `json:"author_name,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	Response    string    `json:"response,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanTransitionTo enforces the forward-only lifecycle
// open -> in_review -> resolved.
func (a Aspiration) CanTransitionTo(status string) bool {
	switch a.Status {
	case AspirationOpen:
		return status == AspirationInReview || status == AspirationResolved
	case AspirationInReview:
		return status == AspirationResolved
	default:
		return false
	}
}
