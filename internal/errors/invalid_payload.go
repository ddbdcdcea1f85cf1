package errors

var (
	ErrInvalidPayload = NewValidationError("invalidPayload", "invalid request payload")
	ErrInvalidDueDate = NewValidationError("invalidDueDate", "due date must use the YYYY-MM-DD format")
)
