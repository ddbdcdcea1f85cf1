package errors

import "net/http"

var (
	ErrInvalidCredentials = &Exception{
		Kind:       KindAuth,
		Key:        "invalidCredentials",
		Message:    "invalid login credentials",
		StatusCode: http.StatusUnauthorized,
	}

	ErrEmailTaken = &Exception{
		Kind:       KindAuth,
		Key:        "emailTaken",
		Message:    "user already registered",
		StatusCode: http.StatusConflict,
	}

	ErrInvalidEmail = &Exception{
		Kind:       KindAuth,
		Key:        "invalidEmail",
		Message:    "unable to validate email address: invalid format",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrWeakPassword = &Exception{
		Kind:       KindAuth,
		Key:        "weakPassword",
		Message:    "password should be at least 6 characters",
		StatusCode: http.StatusUnprocessableEntity,
	}
)

// bcrypt only looks at the first 72 bytes of a password.
var ErrPasswordTooLong = &Exception{
	Kind:       KindAuth,
	Key:        "passwordTooLong",
	Message:    "password should be at most 72 bytes",
	StatusCode: http.StatusUnprocessableEntity,
}
