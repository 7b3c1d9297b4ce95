package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitAspirationRequest struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (req *SubmitAspirationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Required, validation.Length(1, 5000)),
	)
}

type RespondAspirationRequest struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
}

func (req *RespondAspirationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("in_review", "resolved")),
		validation.Field(&req.Response, validation.Length(0, 5000)),
	)
}
