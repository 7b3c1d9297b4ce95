package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/metrics"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var ErrMailNotFound = repository.ErrMailNotFound

type MailRepository interface {
	Create(ctx context.Context, mail domain.Mail) (domain.Mail, error)
	FindByID(ctx context.Context, id uint) (domain.Mail, error)
	Deliver(ctx context.Context, mailID uint, recipientIDs []uint) error
	FindInbox(ctx context.Context, recipientID uint) ([]domain.InboxEntry, error)
	FindInboxEntry(ctx context.Context, entryID, recipientID uint) (domain.InboxEntry, error)
	MarkRead(ctx context.Context, entryID, recipientID uint) error
}

type MailMemberRepository interface {
	FindActiveIDs(ctx context.Context, role string) ([]uint, error)
}

// BroadcastQueue decouples accepting a broadcast from fanning it out.
type BroadcastQueue interface {
	EnqueueBroadcast(ctx context.Context, mailID uint) error
}

type MailService struct {
	repo       MailRepository
	memberRepo MailMemberRepository
	queue      BroadcastQueue
}

func NewMailService(repo MailRepository, memberRepo MailMemberRepository, queue BroadcastQueue) *MailService {
	return &MailService{
		repo:       repo,
		memberRepo: memberRepo,
		queue:      queue,
	}
}

// SendDirect writes the mail and its single inbox row synchronously.
func (s *MailService) SendDirect(ctx context.Context, senderID, recipientID uint, subject, body string) (domain.Mail, error) {
	mail, err := s.repo.Create(ctx, domain.Mail{
		SenderID: senderID,
		Subject:  subject,
		Body:     body,
		Scope:    domain.MailScopeDirect,
	})
	if err != nil {
		return domain.Mail{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.repo.Deliver(ctx, mail.ID, []uint{recipientID}); err != nil {
		return domain.Mail{}, fmt.Errorf("s.repo.Deliver -> %w", err)
	}

	return mail, nil
}

// Broadcast records the mail and hands fan-out to the queue; the dispatcher
// calls DeliverBroadcast with the mail ID.
func (s *MailService) Broadcast(ctx context.Context, senderID uint, subject, body, targetRole string) (domain.Mail, error) {
	mail, err := s.repo.Create(ctx, domain.Mail{
		SenderID:   senderID,
		Subject:    subject,
		Body:       body,
		Scope:      domain.MailScopeBroadcast,
		TargetRole: targetRole,
	})
	if err != nil {
		return domain.Mail{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.queue.EnqueueBroadcast(ctx, mail.ID); err != nil {
		// The mail row exists; deliver inline rather than lose it.
		zap.L().Warn("broadcast enqueue failed, delivering inline", zap.Uint("mail_id", mail.ID), zap.Error(err))
		if err = s.DeliverBroadcast(ctx, mail.ID); err != nil {
			return domain.Mail{}, err
		}
	}

	return mail, nil
}

// DeliverBroadcast resolves the recipient set and writes the inbox rows.
// Invoked by the queue dispatcher.
func (s *MailService) DeliverBroadcast(ctx context.Context, mailID uint) error {
	mail, err := s.repo.FindByID(ctx, mailID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	recipientIDs, err := s.memberRepo.FindActiveIDs(ctx, mail.TargetRole)
	if err != nil {
		return fmt.Errorf("s.memberRepo.FindActiveIDs -> %w", err)
	}

	if err = s.repo.Deliver(ctx, mail.ID, recipientIDs); err != nil {
		return fmt.Errorf("s.repo.Deliver -> %w", err)
	}

	metrics.BroadcastsDelivered.Inc()
	zap.L().Info("broadcast delivered",
		zap.Uint("mail_id", mail.ID),
		zap.Int("recipients", len(recipientIDs)),
	)

	return nil
}

func (s *MailService) GetInbox(ctx context.Context, userID uint) ([]domain.InboxEntry, error) {
	entries, err := s.repo.FindInbox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindInbox -> %w", err)
	}

	return entries, nil
}

// ReadEntry fetches one inbox entry and marks it read.
func (s *MailService) ReadEntry(ctx context.Context, entryID, userID uint) (domain.InboxEntry, error) {
	entry, err := s.repo.FindInboxEntry(ctx, entryID, userID)
	if err != nil {
		return domain.InboxEntry{}, fmt.Errorf("s.repo.FindInboxEntry -> %w", err)
	}

	if entry.ReadAt == nil {
		if err = s.repo.MarkRead(ctx, entryID, userID); err != nil {
			return domain.InboxEntry{}, fmt.Errorf("s.repo.MarkRead -> %w", err)
		}
	}

	return entry, nil
}
