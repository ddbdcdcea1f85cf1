package errors

import "net/http"

var ErrUnauthenticated = &Exception{
	Kind:       KindUnauthenticated,
	Key:        "unauthenticated",
	Message:    "not authenticated",
	StatusCode: http.StatusUnauthorized,
}
