package booking

import (
	"errors"
	"fmt"
)

// Kind classifies every error the booking core can surface. The set is
// closed: callers switch on it to decide retry behavior and transports
// map it to status codes.
type Kind int

const (
	KindInvalidRange Kind = iota + 1
	KindConflict
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewInvalidRange(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRange, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or 0 for errors that did not
// originate in the booking core.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsInvalidRange(err error) bool { return KindOf(err) == KindInvalidRange }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
