package validate

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag-based validation on a request payload.
func Struct(s any) error {
	return v.Struct(s)
}
