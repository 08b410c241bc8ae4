package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/samvad-netkit/pkg/httpclient"
)

// Session executes request descriptors over an injected transport. It holds
// no per-call state, so one Session may serve concurrent callers.
type Session struct {
	client  httpclient.Client
	decoder Decoder
	headers map[string]string
	log     Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDecoder replaces the default JSON decoder, which rejects unknown fields.
func WithDecoder(d Decoder) Option {
	return func(s *Session) {
		if d != nil {
			s.decoder = d
		}
	}
}

// WithHeaders sets headers sent on every request. Descriptor headers win on conflict.
func WithHeaders(h map[string]string) Option {
	return func(s *Session) {
		for k, v := range h {
			s.headers[k] = v
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log Logger) Option {
	return func(s *Session) {
		s.log = ensureLogger(log)
	}
}

// NewSession wires a session around the given transport.
func NewSession(client httpclient.Client, opts ...Option) (*Session, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}
	s := &Session{
		client:  client,
		decoder: JSONDecoder{DisallowUnknownFields: true},
		headers: map[string]string{"Accept": "application/json"},
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Execute runs d on s and decodes a successful body into T.
func Execute[T any](ctx context.Context, s *Session, d Descriptor) (T, error) {
	var out T
	if err := s.Do(ctx, d, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Do runs d and decodes a successful body into out, which must be a pointer.
// Every failure is returned as an *Error.
func (s *Session) Do(ctx context.Context, d Descriptor, out any) error {
	if s == nil || s.client == nil {
		return NewUnknownError(errors.New("session is not initialized"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	wire, err := BuildWireRequest(d)
	if err != nil {
		s.log.WarnObj("request construction failed", "request_error", map[string]any{
			"base_url": baseURLOf(d),
			"error":    err.Error(),
		})
		return err
	}
	target := wire.URL.String()
	callID := uuid.NewString()

	if dropped := DroppedParams(d); len(dropped) > 0 {
		s.log.WarnObj("request params not sent", "request_params", map[string]any{
			"call_id": callID,
			"method":  wire.Method.String(),
			"url":     target,
			"params":  dropped,
		})
	}

	start := time.Now()
	s.log.DebugObj("request started", "request", map[string]any{
		"call_id": callID,
		"method":  wire.Method.String(),
		"url":     target,
	})

	resp, err := s.client.Do(ctx, wire.Method.String(), target, s.mergeHeaders(wire.Header))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return s.fail(callID, NewUnknownError(ctxErr))
	}
	if err != nil {
		return s.fail(callID, NewNetworkError(target, err))
	}
	if resp == nil || resp.StatusCode() <= 0 {
		return s.fail(callID, NewUnexpectedResponseError(target))
	}

	status := resp.StatusCode()
	body := resp.Body()
	if classErr := Classify(status, body); classErr != nil {
		classErr.URL = target
		return s.fail(callID, classErr)
	}

	if err := s.decoder.Decode(body, out); err != nil {
		return s.fail(callID, NewDecodingError(target, err))
	}

	s.log.DebugObj("request completed", "request", map[string]any{
		"call_id":     callID,
		"status":      status,
		"body_bytes":  len(body),
		"elapsed_ms":  time.Since(start).Milliseconds(),
		"decode_type": fmt.Sprintf("%T", out),
	})
	return nil
}

func (s *Session) mergeHeaders(req map[string]string) map[string]string {
	out := make(map[string]string, len(s.headers)+len(req))
	for k, v := range s.headers {
		out[k] = v
	}
	for k, v := range req {
		out[k] = v
	}
	return out
}

func (s *Session) fail(callID string, err *Error) error {
	s.log.WarnObj("request failed", "request_error", map[string]any{
		"call_id": callID,
		"code":    err.Code.String(),
		"status":  err.StatusCode,
		"error":   err.Error(),
	})
	return err
}

func baseURLOf(d Descriptor) string {
	if isNil(d) {
		return ""
	}
	return d.BaseURL()
}
