package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// RemoteError is a failed call to the backend: either a non-2xx response or
// a transport failure (StatusCode 0). Error returns the server's message
// verbatim so it can be shown to the user as is.
type RemoteError struct {
	StatusCode int
	Message    string

	kind  error
	cause error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() []error {
	var errs []error
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

const maxErrorBody = 64 << 10

// errorBody covers both conventions the backend uses for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeRemoteError(resp *http.Response) *RemoteError {
	e := &RemoteError{StatusCode: resp.StatusCode, kind: kindForStatus(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case strings.TrimSpace(body.Error) != "":
			e.Message = body.Error
		case strings.TrimSpace(body.Message) != "":
			e.Message = body.Message
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	if e.Message == "" {
		e.Message = resp.Status
	}
	return e
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// mapTransportError wraps a failure that happened before any response arrived.
func mapTransportError(err error) *RemoteError {
	if errors.Is(err, context.Canceled) {
		return &RemoteError{Message: "request cancelled", cause: err}
	}
	return &RemoteError{Message: ErrUnavailable.Error(), kind: ErrUnavailable, cause: err}
}
