package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the remote API. Message carries
// the server's own wording and is shown to the user verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API. Callers
// unify on one policy for it: clear the role's tokens and require a
// fresh login.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody covers the error envelopes the API is known to emit:
// {"error": {"issues": [{"message": ...}]}} from validation and
// {"error": ..., "code": ..., "details": ...} from the gateway.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Code    string          `json:"code"`
	Details string          `json:"details"`
	Message string          `json:"message"`
}

type issueList struct {
	Issues []struct {
		Message string `json:"message"`
	} `json:"issues"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Code = body.Code

	switch {
	case len(body.Error) > 0:
		var issues issueList
		if err := json.Unmarshal(body.Error, &issues); err == nil && len(issues.Issues) > 0 {
			apiErr.Message = issues.Issues[0].Message
			return apiErr
		}
		var plain string
		if err := json.Unmarshal(body.Error, &plain); err == nil && plain != "" {
			apiErr.Message = plain
		}
	case body.Message != "":
		apiErr.Message = body.Message
	}
	return apiErr
}
