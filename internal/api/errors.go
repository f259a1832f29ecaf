package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Error is a backend failure surfaced to the user verbatim. The backend
// answers errors either as a bare string or as {"message": "..."}; both
// shapes end up in Message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// decodeError turns a non-2xx response into an *Error. Falls back through
// structured message, raw body text, and finally the HTTP status text so
// the user always sees something actionable.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		var structured struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &structured) == nil && structured.Message != "" {
			apiErr.Message = structured.Message
			return apiErr
		}
		var plain string
		if json.Unmarshal(body, &plain) == nil && plain != "" {
			apiErr.Message = plain
			return apiErr
		}
		if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
			apiErr.Message = text
			return apiErr
		}
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
