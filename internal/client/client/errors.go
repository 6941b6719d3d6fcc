package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoRecord     = errors.New("response carried no record")
)

// NetworkError reports a request that got no response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a rejected request. Message is the server-provided
// explanation, when the body carried one.
type ServerError struct {
	Status  int
	Body    []byte
	Message string
}

func newServerError(status int, body []byte) *ServerError {
	return &ServerError{Status: status, Body: body, Message: extractMessage(body)}
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// extractMessage prefers the detail, error and message keys of a JSON
// object, falls back to the compact JSON itself, then to short plain text.
func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if json.Valid(body) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, body); err == nil {
			return buf.String()
		}
	}
	if s := string(body); len(s) <= 200 && !strings.Contains(s, "<") {
		return s
	}
	return ""
}

const (
	msgNetwork = "failed to reach server"
	msgServer  = "server error, please try again later"
)

// Describe renders err as the one line shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return msgNetwork
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Status >= http.StatusInternalServerError {
			return msgServer
		}
		if se.Message != "" {
			return se.Message
		}
		return fmt.Sprintf("request rejected (status %d)", se.Status)
	}
	return err.Error()
}
