package quantplay

import (
	"encoding/json"
	"net/http"
)

// handleResponse applies the shared response contract to one completed HTTP
// outcome: a non-2xx status or an explicit failure marker raises an API
// request error, an undecodable success body raises a parse error, and
// anything else yields the envelope's data payload verbatim.
func handleResponse(statusCode int, body []byte) (json.RawMessage, error) {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, newAPIRequestError(statusCode, failureMessage(body))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newParseError(err)
	}
	if env.failed() {
		msg := env.Message
		if msg == "" {
			msg = unknownError
		}
		return nil, newAPIRequestError(statusCode, msg)
	}
	return env.Data, nil
}

// failureMessage extracts the service's message from a failure body. A body
// that decodes as JSON resolves to its message field or "Unknown error"; the
// raw response text is the fallback only when the body is not JSON at all.
func failureMessage(body []byte) string {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if obj, ok := parsed.(map[string]any); ok {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				return msg
			}
		}
		return unknownError
	}
	if len(body) > 0 {
		return string(body)
	}
	return unknownError
}
