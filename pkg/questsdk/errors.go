package questsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failed response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cardquest: %d: %s", e.StatusCode, e.Message)
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func IsNotFound(err error) bool   { return statusIs(err, http.StatusNotFound) }
func IsConflict(err error) bool   { return statusIs(err, http.StatusConflict) }
func IsBadRequest(err error) bool { return statusIs(err, http.StatusBadRequest) }

func parseErrorResponse(resp *http.Response, body []byte) error {
	var env ErrorResponse
	if err := json.Unmarshal(body, &env); err != nil || env.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
}
