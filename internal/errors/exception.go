package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindAuth            Kind = "auth"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindStore           Kind = "store"
	KindUnauthenticated Kind = "unauthenticated"
)

// Exception is the error type every layer below the HTTP handlers returns for
// conditions a user can see. Key is a translation message id; Message is the
// English text used when no translation exists.
type Exception struct {
	Kind       Kind
	Key        string
	Message    string
	StatusCode int
	Err        error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

func IsKind(err error, kind Kind) bool {
	var appErr *Exception
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// NewStoreError wraps a storage failure. The driver message is kept verbatim
// because it is shown to the user as is.
func NewStoreError(err error) *Exception {
	if err == nil {
		return nil
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Exception{
		Kind:       KindStore,
		Message:    err.Error(),
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewValidationError(key, message string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Key:        key,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}
