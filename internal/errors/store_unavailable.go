package errors

import "net/http"

var ErrStoreUnavailable = &Exception{
	Kind:       KindStore,
	Key:        "storeUnavailable",
	Message:    "data store is not configured",
	StatusCode: http.StatusServiceUnavailable,
}
