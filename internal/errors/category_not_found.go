package errors

import "net/http"

var ErrCategoryNotFound = &Exception{
	Kind:       KindNotFound,
	Key:        "categoryNotFound",
	Message:    "category not found",
	StatusCode: http.StatusNotFound,
}
