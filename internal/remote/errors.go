package remote

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// PreconditionError reports a required route parameter that was missing
// before any request was sent. No network call happens and no command
// is applied.
type PreconditionError struct {
	Param string
}

func (e *PreconditionError) Error() string {
	return "missing required parameter: " + e.Param
}

// IsPrecondition reports whether err is a client-side precondition
// failure.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// StatusCode extracts the HTTP status from a server failure, or 0 if
// the error was a transport or precondition failure.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
