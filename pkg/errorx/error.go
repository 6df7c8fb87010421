package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is reports whether err carries the given code somewhere in its chain.
func Is(err error, code Code) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code == code
	}

	return false
}

// CodeOf returns the code of err, or the code of Unknown if err is not an Error.
func CodeOf(err error) Code {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code
	}

	return Unknown.Code
}
