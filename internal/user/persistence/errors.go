package persistence

import "errors"

// ErrInvalidArgument classifies persist calls that cannot identify a user.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError carries the message shown to callers.
// It matches ErrInvalidArgument under errors.Is.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// errEmailOrIDRequired is raised when a transfer has neither ID nor email.
var errEmailOrIDRequired = &InvalidArgumentError{Message: "Email or Id required"}

// errEmailRequiredForNew is raised when an id-only transfer matches no
// stored record, which would otherwise insert a row without an email.
var errEmailRequiredForNew = &InvalidArgumentError{Message: "Email required to create a user"}
