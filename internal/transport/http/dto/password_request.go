package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PasswordChangeRequest is the JSON body of POST /auth/v1/password/change.
type PasswordChangeRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Validate rejects absent or empty fields. Values are passed on exactly as
// sent; whitespace-only strings are not empty.
func (r *PasswordChangeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.ErrMissingFields()
	}
	return nil
}
