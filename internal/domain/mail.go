package domain

import "time"

const (
	MailScopeDirect    = "direct"
	MailScopeBroadcast = "broadcast"
)

// Mail is an internal message. Broadcast mail targets every active member
// (optionally narrowed to one role) and is fanned out asynchronously.
type Mail struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Scope      string    `json:"scope"`
	TargetRole string    `json:"target_role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// InboxEntry is the per-recipient delivery of a mail.
type InboxEntry struct {
	ID          uint       `json:"id"`
	MailID      uint       `json:"mail_id"`
	RecipientID uint       `json:"recipient_id"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	Mail        Mail       `json:"mail"`
}
