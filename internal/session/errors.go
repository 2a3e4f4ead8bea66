package session

import (
	"errors"

	"github.com/idilsaglam/todoview/internal/api"
)

// Messages shown to the user, one per failure path.
const (
	MsgFetchFailed   = "Error fetching todos"
	MsgCreateFailed  = "Failed to add todo"
	MsgMissingFields = "Please enter task and date"
	MsgInvalidDate   = "Dates must look like YYYY-MM-DD"
)

// ValidationError rejects user input before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNetworkFailure reports whether err came from talking to the API.
// Malformed responses count as network failures.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, api.ErrNetwork) || errors.Is(err, api.ErrMalformedResponse)
}
