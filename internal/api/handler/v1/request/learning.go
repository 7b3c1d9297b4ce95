package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errMaterialSource = errors.New("exactly one of url or file_path is required")

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type CreateMaterialRequest struct {
	CategoryID  uint   `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
}

func (req *CreateMaterialRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.URL, is.URL),
	)
	if err != nil {
		return err
	}

	if (req.URL == "") == (req.FilePath == "") {
		return errMaterialSource
	}

	return nil
}

type UpdateMaterialRequest struct {
	CreateMaterialRequest
}
