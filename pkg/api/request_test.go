package api

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveURLKeepsHostAndPath(t *testing.T) {
	cases := []struct {
		base, path, host string
	}{
		{"https://api.example.com", "/users/42", "api.example.com"},
		{"http://localhost:8080", "/v1/items", "localhost:8080"},
		{"https://api.example.com/ignored", "/search%20all", "api.example.com"},
	}

	for _, tc := range cases {
		u, ok := Get(tc.base, tc.path, nil).URL()
		if !ok {
			t.Fatalf("DeriveURL(%q, %q) failed", tc.base, tc.path)
		}
		if u.Host != tc.host {
			t.Fatalf("host = %q, want %q", u.Host, tc.host)
		}
		if u.EscapedPath() != tc.path {
			t.Fatalf("path = %q, want %q", u.EscapedPath(), tc.path)
		}
	}
}

func TestDeriveURLAddsStringParamsForGet(t *testing.T) {
	req := Get("https://api.example.com", "/search", Params{"q": String("golang")})

	u, ok := DeriveURL(req)
	if !ok {
		t.Fatalf("DeriveURL failed")
	}
	if got := u.Query().Get("q"); got != "golang" {
		t.Fatalf("query q = %q, want golang", got)
	}
	if got, want := u.String(), "https://api.example.com/search?q=golang"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestDeriveURLOmitsParamsForNonGet(t *testing.T) {
	params := Params{"q": String("golang"), "page": String("1")}
	for _, m := range Methods() {
		if m == MethodGet {
			continue
		}
		u, ok := DeriveURL(NewRequest(m, "https://api.example.com", "/search", params))
		if !ok {
			t.Fatalf("%s: DeriveURL failed", m)
		}
		if u.RawQuery != "" {
			t.Fatalf("%s: expected no query items, got %q", m, u.RawQuery)
		}
	}
}

func TestDeriveURLOmitsParamsWhenNotAllStrings(t *testing.T) {
	req := Get("https://api.example.com", "/search", Params{"q": String("golang"), "page": Int(2)})

	u, ok := DeriveURL(req)
	if !ok {
		t.Fatalf("DeriveURL failed")
	}
	if u.RawQuery != "" {
		t.Fatalf("expected no query items, got %q", u.RawQuery)
	}
	if diff := cmp.Diff([]string{"page", "q"}, DroppedParams(req)); diff != "" {
		t.Fatalf("DroppedParams mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveURLRejectsUnparseableBase(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/only", "://missing-scheme", "https://"} {
		if u, ok := Get(base, "/x", nil).URL(); ok {
			t.Fatalf("base %q: expected failure, got %v", base, u)
		}
	}
}

func TestDeriveURLRejectsRelativePath(t *testing.T) {
	for _, path := range []string{"users", "users/42", "%2Fusers"} {
		if u, ok := Get("https://api.example.com", path, nil).URL(); ok {
			t.Fatalf("path %q: expected failure, got %v", path, u)
		}
	}
	_, err := BuildWireRequest(Get("https://api.example.com", "users", nil))
	if !IsInvalidURL(err) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
}

func TestDeriveURLAllowsEmptyPath(t *testing.T) {
	u, ok := Get("https://api.example.com", "", nil).URL()
	if !ok {
		t.Fatalf("DeriveURL failed")
	}
	if got, want := u.String(), "https://api.example.com"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

// pointerDescriptor implements Descriptor on a pointer receiver.
type pointerDescriptor struct {
	base string
}

func (p *pointerDescriptor) BaseURL() string { return p.base }
func (p *pointerDescriptor) Path() string    { return "/" }
func (p *pointerDescriptor) Params() Params  { return nil }
func (p *pointerDescriptor) Method() Method  { return MethodGet }

func TestNilPointerDescriptorHasNoURL(t *testing.T) {
	var d *pointerDescriptor
	if u, ok := DeriveURL(d); ok {
		t.Fatalf("expected failure, got %v", u)
	}
	if _, err := BuildWireRequest(d); !IsInvalidURL(err) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
	if got := DroppedParams(d); got != nil {
		t.Fatalf("DroppedParams = %v, want nil", got)
	}

	wire, err := BuildWireRequest(&pointerDescriptor{base: "https://api.example.com"})
	if err != nil || wire.URL.String() != "https://api.example.com/" {
		t.Fatalf("BuildWireRequest = %v, %v", wire, err)
	}
}

func TestDeriveURLIsIdempotent(t *testing.T) {
	req := Get("https://api.example.com", "/search", Params{"q": String("go"), "lang": String("en")})

	first, ok := DeriveURL(req)
	if !ok {
		t.Fatalf("DeriveURL failed")
	}
	second, ok := DeriveURL(req)
	if !ok {
		t.Fatalf("DeriveURL failed on second call")
	}
	if first.String() != second.String() {
		t.Fatalf("urls differ: %q vs %q", first, second)
	}
}

func TestBuildWireRequestInvalidURL(t *testing.T) {
	wire, err := BuildWireRequest(Get("", "/users", nil))
	if wire != nil {
		t.Fatalf("expected nil wire request, got %+v", wire)
	}
	if !IsInvalidURL(err) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
}

func TestBuildWireRequestCarriesMethodAndHeaders(t *testing.T) {
	req := NewRequest(MethodDelete, "https://api.example.com", "/users/1", nil).
		WithHeader("X-Trace", "abc")

	wire, err := BuildWireRequest(req)
	if err != nil {
		t.Fatalf("BuildWireRequest: %v", err)
	}
	if wire.Method != MethodDelete {
		t.Fatalf("method = %q, want DELETE", wire.Method)
	}
	if got, want := wire.URL.String(), "https://api.example.com/users/1"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
	if diff := cmp.Diff(map[string]string{"X-Trace": "abc"}, wire.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWireRequestRejectsUnknownMethod(t *testing.T) {
	_, err := BuildWireRequest(NewRequest(Method("BREW"), "https://api.example.com", "/pot", nil))
	if CodeOf(err) != ErrCodeUnknown {
		t.Fatalf("expected unknown error, got %v", err)
	}
}

func TestRequestSettersDoNotMutateOriginal(t *testing.T) {
	params := Params{"a": String("1")}
	base := Get("https://api.example.com", "/", params)
	params["b"] = String("2")

	derived := base.WithParam("c", String("3")).WithHeader("X-A", "1")

	if len(base.Params()) != 1 {
		t.Fatalf("base params mutated: %v", base.Params())
	}
	if base.Header() != nil {
		t.Fatalf("base header mutated: %v", base.Header())
	}
	if diff := cmp.Diff([]string{"a", "c"}, derived.Params().Keys()); diff != "" {
		t.Fatalf("derived params mismatch (-want +got):\n%s", diff)
	}
}
