package errors

var (
	ErrCategoryNameRequired = NewValidationError("categoryNameRequired", "category name is required")
	ErrInvalidColor         = NewValidationError("invalidColor", "color must be a hex value such as #3B82F6")
	ErrUnknownCategory      = NewValidationError("unknownCategory", "category does not exist")
)
