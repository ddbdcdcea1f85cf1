package errors

import "net/http"

var ErrRateLimited = &Exception{
	Kind:       KindValidation,
	Key:        "rateLimited",
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
