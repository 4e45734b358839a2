package bancosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends body, if any, as JSON.
func (c *SDKClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// withRUT appends the rut query parameter to path.
func withRUT(path, rut string) string {
	return path + "?" + url.Values{"rut": {rut}}.Encode()
}

// decodeJSON decodes the response into target when the status matches
// expectedStatus, and into an *APIError otherwise.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeEnvelope unwraps {"ok":true,"body":...} into body.
func decodeEnvelope[T any](resp *http.Response, expectedStatus int) (T, error) {
	var env Envelope[T]
	if err := decodeJSON(resp, &env, expectedStatus); err != nil {
		var zero T
		return zero, err
	}
	if !env.OK {
		var zero T
		return zero, &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode), Message: "envelope not ok"}
	}
	return env.Body, nil
}
