package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Key:        "taskNotFound",
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}
