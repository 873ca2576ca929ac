package validators

import "github.com/go-playground/validator/v10"

// New returns a validator configured the way handlers expect.
func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
