package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMailNotFound = errors.New("mail not found")

type Mail struct {
	ID uint `gorm:"primaryKey"`

	SenderID   uint   `gorm:"not null;index"`
	Subject    string `gorm:"not null"`
	Body       string `gorm:"not null"`
	Scope      string `gorm:"not null"` // "direct" or "broadcast"
	TargetRole string

	CreatedAt time.Time `gorm:"not null"`
}

type InboxEntry struct {
	ID uint `gorm:"primaryKey"`

	MailID      uint `gorm:"not null;index"`
	Mail        Mail `gorm:"foreignKey:MailID"`
	RecipientID uint `gorm:"not null;index"`
	ReadAt      *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

type MailDAO struct {
	db *gorm.DB
}

func NewMailDAO(db *gorm.DB) *MailDAO {
	return &MailDAO{
		db: db,
	}
}

func (d *MailDAO) Insert(ctx context.Context, mail Mail) (Mail, error) {
	result := d.db.WithContext(ctx).Create(&mail)
	if result.Error != nil {
		return Mail{}, result.Error
	}

	return mail, nil
}

func (d *MailDAO) FindByID(ctx context.Context, id uint) (Mail, error) {
	var mail Mail

	result := d.db.WithContext(ctx).First(&mail, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Mail{}, ErrMailNotFound
		}

		return Mail{}, result.Error
	}

	return mail, nil
}

// InsertDeliveries writes one inbox row per recipient in a single batch.
func (d *MailDAO) InsertDeliveries(ctx context.Context, mailID uint, recipientIDs []uint) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	entries := make([]InboxEntry, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		entries = append(entries, InboxEntry{MailID: mailID, RecipientID: id})
	}

	return d.db.WithContext(ctx).Create(&entries).Error
}

func (d *MailDAO) FindInbox(ctx context.Context, recipientID uint) ([]InboxEntry, error) {
	var entries []InboxEntry

	result := d.db.WithContext(ctx).
		Preload("Mail").
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *MailDAO) FindInboxEntry(ctx context.Context, entryID, recipientID uint) (InboxEntry, error) {
	var entry InboxEntry

	result := d.db.WithContext(ctx).
		Preload("Mail").
		First(&entry, "id = ? AND recipient_id = ?", entryID, recipientID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return InboxEntry{}, ErrMailNotFound
		}

		return InboxEntry{}, result.Error
	}

	return entry, nil
}

func (d *MailDAO) MarkRead(ctx context.Context, entryID, recipientID uint, readAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&InboxEntry{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", entryID, recipientID).
		Update("read_at", readAt)

	return result.Error
}
