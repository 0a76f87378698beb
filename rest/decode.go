package rest

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/useragent"
)

// APIError is the JSON error body of the chat API.
type APIError struct {
	Code       int     `json:"code"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after,omitempty"`
	Global     bool    `json:"global,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: %s (code %d)", e.Message, e.Code)
}

// JSON returns a handler decoding the body into out. Empty bodies leave out
// untouched; decode failures are logged.
func JSON[T any](out *T) useragent.Handler {
	return useragent.Bind(out, func(body []byte, out *T) {
		if len(body) == 0 {
			return
		}
		if err := json.Unmarshal(body, out); err != nil {
			logger.Get("rest").Warn("decode response body", logger.ErrorFields(err))
		}
	})
}

// JSONErr is JSON reporting decode failures through errp instead of logs.
func JSONErr[T any](out *T, errp *error) useragent.Handler {
	return func(body []byte) {
		if len(body) == 0 {
			return
		}
		if err := json.Unmarshal(body, out); err != nil {
			*errp = fmt.Errorf("rest: decode response body: %w", err)
		}
	}
}

// ErrorJSON returns a handler decoding an error body into out.
func ErrorJSON(out *APIError) useragent.Handler {
	return JSON(out)
}

// Expect returns a dispatch decoding 2xx bodies into out and error bodies
// into apiErr.
func Expect[T any](out *T, apiErr *APIError) *useragent.Dispatch {
	return &useragent.Dispatch{OnSuccess: JSON(out), OnError: ErrorJSON(apiErr)}
}
