package errors

import "fmt"

var (
	ErrTypeMismatch            = fmt.Errorf("type mismatch")
	ErrMissingIdentityField    = fmt.Errorf("missing identity field")
	ErrUnroutableMessage       = fmt.Errorf("message is neither a command nor an event")
	ErrNoCommandHandler        = fmt.Errorf("no handler registered for command")
	ErrDuplicateCommandHandler = fmt.Errorf("command handler already registered")
	ErrHandlerPanic            = fmt.Errorf("handler panic")
	ErrDispatchLimit           = fmt.Errorf("dispatch limit reached")
	ErrNotInTransaction        = fmt.Errorf("unit of work has not begun")
	ErrInvalidConfig           = fmt.Errorf("invalid configuration")
	ErrInvalidCommand          = fmt.Errorf("invalid command")

	ErrConstraintViolation = fmt.Errorf("constraint violation")
	ErrSuiteNotFound       = fmt.Errorf("suite not found")
	ErrBuildingNotFound    = fmt.Errorf("building not found")
)

// HandlerError wraps any failure raised inside a handler body.
// Message and Handler are names, kept as strings so the error stays printable
// after the message itself is gone.
type HandlerError struct {
	Message string
	Handler string
	Err     error
}

func (e *HandlerError) Error() string {
	if e.Handler == "" {
		return fmt.Sprintf("handling %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("handling %s with %s: %v", e.Message, e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
