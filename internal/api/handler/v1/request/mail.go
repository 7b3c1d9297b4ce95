package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SendMailRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

func (req *SendMailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RecipientID, validation.Required),
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Required, validation.Length(1, 10000)),
	)
}

type BroadcastMailRequest struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	TargetRole string `json:"target_role,omitempty"` // empty = all active members
}

func (req *BroadcastMailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Required, validation.Length(1, 10000)),
		validation.Field(&req.TargetRole, validation.In("admin", "pengurus", "anggota")),
	)
}
