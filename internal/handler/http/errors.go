package http

import (
	"errors"

	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// orInternal keeps errors that already carry a client-facing code and turns
// anything else into a 500 with the route's fixed message.
func orInternal(err error, message string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(message, err)
}
