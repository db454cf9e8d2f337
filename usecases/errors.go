package usecases

import "errors"

// Error kinds. Every error returned by a use case wraps exactly one.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store failure")
)

// Error carries a client-facing message, its kind and the underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func notFoundError(msg string, cause error) error {
	return &Error{Kind: ErrNotFound, Msg: msg, Err: cause}
}

func storeError(msg string, cause error) error {
	return &Error{Kind: ErrStore, Msg: msg, Err: cause}
}
