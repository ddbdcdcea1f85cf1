package errors

var ErrTitleRequired = NewValidationError("titleRequired", "title is required")
