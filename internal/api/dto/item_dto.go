package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// ItemRequest payload for creating or replacing an item.
type ItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Validate checks the item payload.
func (r ItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(0, 2000)),
	)
}
