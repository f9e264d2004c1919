package validate

import (
	"errors"

	"forum-service/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates payload tags and folds failures into the
// InvalidArgument taxonomy so handlers can just return the error.
func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		return errors.Join(apperr.ErrInvalidArgument, err)
	}
	return nil
}
