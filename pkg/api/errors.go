package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies request failures.
type ErrorCode int

const (
	// ErrCodeInvalidURL means the descriptor did not yield a usable URL.
	ErrCodeInvalidURL ErrorCode = iota + 1
	// ErrCodeUnexpectedResponse means the transport returned something that is not an HTTP response.
	ErrCodeUnexpectedResponse
	// ErrCodeNetwork means the transport failed (DNS, reset, timeout).
	ErrCodeNetwork
	// ErrCodeClient covers 4xx responses.
	ErrCodeClient
	// ErrCodeServer covers 5xx responses.
	ErrCodeServer
	// ErrCodeUnexpectedStatus covers any other non-2xx status.
	ErrCodeUnexpectedStatus
	// ErrCodeDecoding means the body could not be decoded into the target type.
	ErrCodeDecoding
	// ErrCodeUnknown wraps everything else, including cancellation.
	ErrCodeUnknown
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInvalidURL:
		return "invalid_url"
	case ErrCodeUnexpectedResponse:
		return "unexpected_response"
	case ErrCodeNetwork:
		return "network"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeUnexpectedStatus:
		return "unexpected_status"
	case ErrCodeDecoding:
		return "decoding"
	case ErrCodeUnknown:
		return "unknown"
	default:
		return "unrecognized"
	}
}

const maxBodySnippet = 512

// Error is a classified request failure.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode
	// StatusCode is set for status classification failures.
	StatusCode int
	// URL is the request target, when known.
	URL string
	// Body is a bounded snippet of the response body.
	Body []byte
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("api: ")
	b.WriteString(e.Code.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code, and by status code when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// NewInvalidURLError reports a descriptor whose base URL and path do not form a URL.
func NewInvalidURLError(baseURL, path string, cause error) *Error {
	if cause == nil {
		cause = fmt.Errorf("cannot build url from base %q and path %q", baseURL, path)
	}
	return &Error{Code: ErrCodeInvalidURL, Err: cause}
}

// NewUnexpectedResponseError reports a transport result without an HTTP status line.
func NewUnexpectedResponseError(url string) *Error {
	return &Error{Code: ErrCodeUnexpectedResponse, URL: url, Err: errors.New("response is not an http response")}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(url string, err error) *Error {
	return &Error{Code: ErrCodeNetwork, URL: url, Err: err}
}

// NewDecodingError wraps a decoder failure.
func NewDecodingError(url string, err error) *Error {
	return &Error{Code: ErrCodeDecoding, URL: url, Err: err}
}

// NewUnknownError wraps a failure outside the other categories.
func NewUnknownError(err error) *Error {
	return &Error{Code: ErrCodeUnknown, Err: err}
}

// Classify converts a status code into a typed error.
// Returns nil for 2xx status codes.
func Classify(statusCode int, body []byte) *Error {
	var code ErrorCode
	switch {
	case statusCode >= 200 && statusCode <= 299:
		return nil
	case statusCode >= 400 && statusCode <= 499:
		code = ErrCodeClient
	case statusCode >= 500 && statusCode <= 599:
		code = ErrCodeServer
	default:
		code = ErrCodeUnexpectedStatus
	}
	return &Error{Code: code, StatusCode: statusCode, Body: snippet(body)}
}

func snippet(body []byte) []byte {
	if len(body) == 0 {
		return nil
	}
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet]
	}
	return append([]byte(nil), body...)
}

// CodeOf returns the ErrorCode carried by err, or zero when err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode, true
	}
	return 0, false
}

// IsInvalidURL checks if err is an invalid URL error.
func IsInvalidURL(err error) bool { return CodeOf(err) == ErrCodeInvalidURL }

// IsUnexpectedResponse checks if err is an unexpected response error.
func IsUnexpectedResponse(err error) bool { return CodeOf(err) == ErrCodeUnexpectedResponse }

// IsNetwork checks if err is a transport failure.
func IsNetwork(err error) bool { return CodeOf(err) == ErrCodeNetwork }

// IsClientError checks if err is a 4xx classification.
func IsClientError(err error) bool { return CodeOf(err) == ErrCodeClient }

// IsServerError checks if err is a 5xx classification.
func IsServerError(err error) bool { return CodeOf(err) == ErrCodeServer }

// IsUnexpectedStatus checks if err is a non-2xx status outside 4xx/5xx.
func IsUnexpectedStatus(err error) bool { return CodeOf(err) == ErrCodeUnexpectedStatus }

// IsDecoding checks if err is a decoding failure.
func IsDecoding(err error) bool { return CodeOf(err) == ErrCodeDecoding }
