package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract. A StatusCode of zero means
// the transport produced no HTTP status line.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Implementations must be safe for concurrent use.
type Client interface {
	Do(ctx context.Context, method, url string, headers map[string]string) (Response, error)
}
