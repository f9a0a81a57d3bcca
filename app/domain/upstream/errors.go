package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Service string

const (
	ServiceQloo       Service = "qloo"
	ServicePerplexity Service = "perplexity"
	ServiceOpenAI     Service = "openai"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuth              = errors.New("upstream rejected the credentials")
	ErrRateLimited       = errors.New("upstream rate limit exceeded")
	ErrTransientNetwork  = errors.New("upstream temporarily unreachable")
	ErrMalformedResponse = errors.New("upstream returned a malformed response")
	// ErrInvalidRequest marks a call refused locally before anything was sent.
	ErrInvalidRequest = errors.New("upstream request is invalid")
)

// Error is the uniform failure shape returned by every upstream client.
type Error struct {
	Service    Service
	Operation  string
	Kind       error
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Service, e.Operation, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewError(service Service, operation string, kind error, statusCode int, err error) *Error {
	return &Error{
		Service:    service,
		Operation:  operation,
		Kind:       kind,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Malformed reports a structurally invalid upstream payload.
func Malformed(service Service, operation string, format string, args ...any) *Error {
	return NewError(service, operation, ErrMalformedResponse, 0, fmt.Errorf(format, args...))
}

// InvalidRequest reports a request that was rejected before it reached the upstream.
func InvalidRequest(service Service, operation string, format string, args ...any) *Error {
	return NewError(service, operation, ErrInvalidRequest, 0, fmt.Errorf(format, args...))
}

// Transport wraps an error raised before any HTTP status was received.
func Transport(service Service, operation string, err error) *Error {
	return NewError(service, operation, ErrTransientNetwork, 0, err)
}

// ClassifyStatus maps a non-2xx HTTP status onto an error kind. It returns nil for 2xx.
func ClassifyStatus(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return ErrAuth
	case statusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case statusCode == http.StatusRequestTimeout, statusCode >= 500:
		return ErrTransientNetwork
	default:
		return ErrMalformedResponse
	}
}

// FromStatus builds an Error for a non-2xx response, or returns nil for 2xx.
func FromStatus(service Service, operation string, statusCode int, body []byte) error {
	kind := ClassifyStatus(statusCode)
	if kind == nil {
		return nil
	}
	var detail error
	if len(body) > 0 {
		if len(body) > 512 {
			body = body[:512]
		}
		detail = errors.New(string(body))
	}
	return NewError(service, operation, kind, statusCode, detail)
}

// KindOf returns the error kind carried by err, treating unknown errors as transient.
func KindOf(err error) error {
	for _, kind := range []error{ErrAuth, ErrRateLimited, ErrTransientNetwork, ErrMalformedResponse, ErrInvalidRequest} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrTransientNetwork
}

// StripCodeFence removes a surrounding markdown code fence that models often wrap JSON answers in.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
