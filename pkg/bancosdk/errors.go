package bancosdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a failed response decoded from its envelope.
type APIError struct {
	StatusCode int
	Message    string
	Code       string // status text, e.g. "Conflict"
	Details    map[string]string
	RetryAfter string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// parseErrorResponse builds an *APIError from a non-success response. Bodies
// that are not an error envelope, e.g. from a proxy, keep the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       http.StatusText(resp.StatusCode),
		Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		RetryAfter: resp.Header.Get("Retry-After"),
	}

	var env Envelope[ErrorBody]
	if err := json.Unmarshal(body, &env); err == nil && !env.OK && env.Body.Message != "" {
		apiErr.Message = env.Body.Message
		apiErr.Details = env.Body.Details
		if env.Body.Error != "" {
			apiErr.Code = env.Body.Error
		}
	}

	return apiErr
}
