package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateFinanceEntryRequest struct {
	Date        time.Time `json:"date"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
}

func (req *CreateFinanceEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Kind, validation.Required, validation.In("income", "expense")),
		validation.Field(&req.Amount, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
	)
}
