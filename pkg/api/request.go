package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Descriptor describes the target and intent of one HTTP call. A nil
// Descriptor, including a nil pointer of a type implementing it, never yields
// a URL.
type Descriptor interface {
	BaseURL() string
	Path() string
	Params() Params
	Method() Method
}

// HeaderProvider is implemented by descriptors that carry per-request headers.
type HeaderProvider interface {
	Header() map[string]string
}

// WireRequest is the transport-ready form of a Descriptor.
type WireRequest struct {
	Method Method
	URL    *url.URL
	Header map[string]string
}

// Request is the value implementation of Descriptor. Setters return copies.
type Request struct {
	baseURL string
	path    string
	params  Params
	method  Method
	header  map[string]string
}

// NewRequest builds a request descriptor.
func NewRequest(method Method, baseURL, path string, params Params) Request {
	return Request{
		baseURL: baseURL,
		path:    path,
		params:  params.clone(),
		method:  method,
	}
}

// Get is shorthand for NewRequest(MethodGet, ...).
func Get(baseURL, path string, params Params) Request {
	return NewRequest(MethodGet, baseURL, path, params)
}

// Post is shorthand for NewRequest(MethodPost, ...).
func Post(baseURL, path string, params Params) Request {
	return NewRequest(MethodPost, baseURL, path, params)
}

func (r Request) BaseURL() string { return r.baseURL }
func (r Request) Path() string    { return r.path }
func (r Request) Params() Params  { return r.params.clone() }
func (r Request) Method() Method  { return r.method }

// Header returns a copy of the per-request headers.
func (r Request) Header() map[string]string {
	if len(r.header) == 0 {
		return nil
	}
	cp := make(map[string]string, len(r.header))
	for k, v := range r.header {
		cp[k] = v
	}
	return cp
}

// WithParam returns a copy of r with key set to v.
func (r Request) WithParam(key string, v Value) Request {
	params := r.params.clone()
	if params == nil {
		params = make(Params, 1)
	}
	params[key] = v
	r.params = params
	return r
}

// WithParams returns a copy of r with p merged over the existing params.
func (r Request) WithParams(p Params) Request {
	for k, v := range p {
		r = r.WithParam(k, v)
	}
	return r
}

// WithHeader returns a copy of r with the header set.
func (r Request) WithHeader(key, value string) Request {
	header := r.Header()
	if header == nil {
		header = make(map[string]string, 1)
	}
	header[key] = value
	r.header = header
	return r
}

// URL derives the request URL. See DeriveURL.
func (r Request) URL() (*url.URL, bool) { return DeriveURL(r) }

// DeriveURL combines the descriptor's base URL and path. The path is used
// verbatim, so callers percent-encode it themselves. A non-empty path must
// start with "/". Params become query items only for GET when every value is
// a string; otherwise the URL carries no descriptor params. ok is false when
// the base URL lacks a scheme or host.
func DeriveURL(d Descriptor) (*url.URL, bool) {
	if isNil(d) {
		return nil, false
	}
	u, err := url.Parse(d.BaseURL())
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}

	if !setPath(u, d.Path()) {
		return nil, false
	}

	if !d.Method().AllowsQueryParams() {
		return u, true
	}
	params := d.Params()
	if len(params) == 0 {
		return u, true
	}
	values, ok := params.StringValues()
	if !ok {
		return u, true
	}
	q := make(url.Values, len(values))
	for k, v := range values {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u, true
}

// setPath stores p so that u.EscapedPath() returns it unchanged when p is
// already valid percent-encoded input.
func setPath(u *url.URL, p string) bool {
	if p != "" && !strings.HasPrefix(p, "/") {
		return false
	}
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return false
	}
	u.Path = unescaped
	u.RawPath = ""
	if unescaped != p {
		u.RawPath = p
	}
	return true
}

// BuildWireRequest resolves d into a WireRequest, failing with an
// ErrCodeInvalidURL error when the URL cannot be derived.
func BuildWireRequest(d Descriptor) (*WireRequest, error) {
	if isNil(d) {
		return nil, NewInvalidURLError("", "", nil)
	}
	u, ok := DeriveURL(d)
	if !ok {
		return nil, NewInvalidURLError(d.BaseURL(), d.Path(), nil)
	}
	method := d.Method()
	if !method.Valid() {
		return nil, NewUnknownError(fmt.Errorf("unsupported http method %q", method))
	}

	var header map[string]string
	if hp, ok := d.(HeaderProvider); ok {
		header = hp.Header()
	}
	return &WireRequest{Method: method, URL: u, Header: header}, nil
}

// DroppedParams returns the names of params that DeriveURL leaves out of the URL.
func DroppedParams(d Descriptor) []string {
	if isNil(d) {
		return nil
	}
	params := d.Params()
	if len(params) == 0 {
		return nil
	}
	if d.Method().AllowsQueryParams() {
		if _, ok := params.StringValues(); ok {
			return nil
		}
	}
	return params.Keys()
}

func isNil(d Descriptor) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
