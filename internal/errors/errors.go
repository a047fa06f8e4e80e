package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeNotFound          ErrorType = "NOT_FOUND"
	ErrTypeUnavailable       ErrorType = "UNAVAILABLE"
	ErrTypeExternal          ErrorType = "EXTERNAL_SERVICE"
	ErrTypeMalformedResponse ErrorType = "MALFORMED_RESPONSE"
	ErrTypeInternal          ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, err error) *DomainError {
	return New(ErrTypeValidation, message, err)
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

func External(message string, err error) *DomainError {
	return New(ErrTypeExternal, message, err)
}

func MalformedResponse(message string, err error) *DomainError {
	return New(ErrTypeMalformedResponse, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// TypeOf reports the domain type of err, ErrTypeInternal for anything
// that isn't a DomainError.
func TypeOf(err error) ErrorType {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr.Type
	}
	return ErrTypeInternal
}

func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}
