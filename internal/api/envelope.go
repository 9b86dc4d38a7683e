package api

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Envelope wraps every non-array API response.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

// OK reports success, which requires both the flag and code 200.
func (e Envelope) OK() bool {
	return e.Success && e.Code == http.StatusOK
}

// UnwrapEnvelope decodes body as an Envelope and returns its data as T.
func UnwrapEnvelope[T any](body []byte) (T, error) {
	return decodeEnvelope[T](http.StatusOK, body)
}

func decodeEnvelope[T any](status int, body []byte) (T, error) {
	var zero T

	if isNull(body) {
		if statusErr := statusError(status); statusErr != nil {
			return zero, statusErr
		}
		return zero, newError(KindDecodingError, nil)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if statusErr := statusError(status); statusErr != nil {
			return zero, statusErr
		}
		return zero, newError(KindDecodingError, err)
	}
	if !env.OK() {
		if statusErr := statusError(status); statusErr != nil {
			return zero, statusErr
		}
		return zero, ServerError(env.Message)
	}
	if isNull(env.Data) {
		return zero, newError(KindDecodingError, nil)
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, newError(KindDecodingError, err)
	}
	return out, nil
}

// decodeArray parses a bare JSON array, dropping null or malformed elements.
func decodeArray[T any](status int, body []byte) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		if statusErr := statusError(status); statusErr != nil {
			return nil, statusErr
		}
		return nil, newError(KindDecodingError, err)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
