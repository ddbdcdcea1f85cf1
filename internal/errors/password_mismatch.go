package errors

var ErrPasswordMismatch = NewValidationError("passwordMismatch", "passwords do not match")
