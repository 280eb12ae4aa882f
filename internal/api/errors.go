// This file contains the client-side error taxonomy. Every non-2xx
// response is decoded into one of these types before it reaches view
// code, so nothing downstream ever sniffs response structure.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthError means the server rejected the credentials.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authentication failed: %s", e.Detail)
	}
	return "authentication failed"
}

// ValidationKind discriminates the shape of a validation failure.
type ValidationKind string

const (
	ValidationField   ValidationKind = "field"   // per-field detail available
	ValidationMessage ValidationKind = "message" // single server message
	ValidationUnknown ValidationKind = "unknown" // unrecognized payload
)

// FieldDetail is one field-level validation failure.
type FieldDetail struct {
	Loc string `json:"loc"`
	Msg string `json:"msg"`
}

// ValidationError means the server rejected the request payload, most
// commonly on signup. Kind tells the caller which representation the
// server used without any structural sniffing on its part.
type ValidationError struct {
	Kind    ValidationKind
	Message string
	Fields  []FieldDetail
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationField:
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			if f.Loc != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", f.Loc, f.Msg))
			} else {
				parts = append(parts, f.Msg)
			}
		}
		return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
	case ValidationMessage:
		return fmt.Sprintf("validation failed: %s", e.Message)
	default:
		return "validation failed"
	}
}

// NotFoundError means the requested document or binary no longer exists.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return "not found"
}

// UploadError means an upload was rejected, either by the client-side
// extension check or by the server.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload rejected: %s", e.Reason)
}

// RateLimitError means the server refused an AI operation because the
// daily quota or cooldown was hit.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("rate limited: %s", e.Detail)
	}
	return "rate limited"
}

// NetworkError means the transport failed before any server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is the fallback for non-2xx responses that map to nothing
// more specific.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsAuth checks if an error is an AuthError.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// IsNetwork checks if an error is a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsRateLimit checks if an error is a RateLimitError.
func IsRateLimit(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// errorBody is the superset of shapes the FastAPI backend uses for
// failures: detail as a plain string, detail as a list of field errors,
// or a bare msg.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Msg    string          `json:"msg"`
}

// parseDetail extracts the server-provided message (and field details,
// when present) from a response body.
func parseDetail(body []byte) (message string, fields []FieldDetail) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", nil
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s, nil
		}
		var raw []struct {
			Loc []json.RawMessage `json:"loc"`
			Msg string            `json:"msg"`
		}
		if err := json.Unmarshal(eb.Detail, &raw); err == nil {
			for _, r := range raw {
				loc := ""
				if n := len(r.Loc); n > 0 {
					var field string
					if json.Unmarshal(r.Loc[n-1], &field) != nil {
						var idx int
						if json.Unmarshal(r.Loc[n-1], &idx) == nil {
							field = fmt.Sprintf("%d", idx)
						}
					}
					loc = field
				}
				fields = append(fields, FieldDetail{Loc: loc, Msg: r.Msg})
			}
			return "", fields
		}
	}

	return eb.Msg, nil
}

// classify turns a non-2xx response into a typed error. resource names
// what was being fetched, for NotFoundError messages.
func classify(status int, body []byte, resource string) error {
	message, fields := parseDetail(body)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Detail: message}
	case http.StatusNotFound:
		return &NotFoundError{Resource: resource}
	case http.StatusTooManyRequests:
		return &RateLimitError{Detail: message}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		switch {
		case len(fields) > 0:
			return &ValidationError{Kind: ValidationField, Fields: fields}
		case message != "":
			return &ValidationError{Kind: ValidationMessage, Message: message}
		default:
			return &ValidationError{Kind: ValidationUnknown}
		}
	}

	return &StatusError{Status: status, Detail: message}
}
