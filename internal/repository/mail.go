package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var ErrMailNotFound = dao.ErrMailNotFound

type MailDAO interface {
	Insert(ctx context.Context, mail dao.Mail) (dao.Mail, error)
	FindByID(ctx context.Context, id uint) (dao.Mail, error)
	InsertDeliveries(ctx context.Context, mailID uint, recipientIDs []uint) error
	FindInbox(ctx context.Context, recipientID uint) ([]dao.InboxEntry, error)
	FindInboxEntry(ctx context.Context, entryID, recipientID uint) (dao.InboxEntry, error)
	MarkRead(ctx context.Context, entryID, recipientID uint, readAt time.Time) error
}

type MailRepository struct {
	dao MailDAO
}

func NewMailRepository(dao MailDAO) *MailRepository {
	return &MailRepository{
		dao: dao,
	}
}

func (r *MailRepository) Create(ctx context.Context, mail domain.Mail) (domain.Mail, error) {
	created, err := r.dao.Insert(ctx, dao.Mail{
		SenderID:   mail.SenderID,
		Subject:    mail.Subject,
		Body:       mail.Body,
		Scope:      mail.Scope,
		TargetRole: mail.TargetRole,
	})
	if err != nil {
		return domain.Mail{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MailRepository) FindByID(ctx context.Context, id uint) (domain.Mail, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Mail{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MailRepository) Deliver(ctx context.Context, mailID uint, recipientIDs []uint) error {
	if err := r.dao.InsertDeliveries(ctx, mailID, recipientIDs); err != nil {
		return fmt.Errorf("r.dao.InsertDeliveries -> %w", err)
	}

	return nil
}

func (r *MailRepository) FindInbox(ctx context.Context, recipientID uint) ([]domain.InboxEntry, error) {
	found, err := r.dao.FindInbox(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindInbox -> %w", err)
	}

	entries := make([]domain.InboxEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, r.entryDaoToDomain(e))
	}

	return entries, nil
}

func (r *MailRepository) FindInboxEntry(ctx context.Context, entryID, recipientID uint) (domain.InboxEntry, error) {
	found, err := r.dao.FindInboxEntry(ctx, entryID, recipientID)
	if err != nil {
		return domain.InboxEntry{}, fmt.Errorf("r.dao.FindInboxEntry -> %w", err)
	}

	return r.entryDaoToDomain(found), nil
}

func (r *MailRepository) MarkRead(ctx context.Context, entryID, recipientID uint) error {
	if err := r.dao.MarkRead(ctx, entryID, recipientID, time.Now()); err != nil {
		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}

func (r *MailRepository) daoToDomain(m dao.Mail) domain.Mail {
	return domain.Mail{
		ID:         m.ID,
		SenderID:   m.SenderID,
		Subject:    m.Subject,
		Body:       m.Body,
		Scope:      m.Scope,
		TargetRole: m.TargetRole,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *MailRepository) entryDaoToDomain(e dao.InboxEntry) domain.InboxEntry {
	return domain.InboxEntry{
		ID:          e.ID,
		MailID:      e.MailID,
		RecipientID: e.RecipientID,
		ReadAt:      e.ReadAt,
		Mail:        r.daoToDomain(e.Mail),
	}
}
