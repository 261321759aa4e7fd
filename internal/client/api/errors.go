package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/echojournal/internal/common"
)

// StatusError is a non-2xx answer. It matches the common sentinels with
// errors.Is.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Code)
	}
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case common.ErrorValidation:
		return e.Code == http.StatusBadRequest
	case common.ErrorUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	case common.ErrorNotFound:
		return e.Code == http.StatusNotFound
	case common.ErrorBackendUnavailable:
		return e.Code >= http.StatusInternalServerError
	}
	return false
}
