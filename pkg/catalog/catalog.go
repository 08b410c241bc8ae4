// Package catalog loads named request descriptors from YAML/JSON files.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/samvad-netkit/pkg/api"
)

// Entry is a single request declared in a catalog file.
type Entry struct {
	Name    string            `json:"name" yaml:"name"`
	BaseURL string            `json:"base_url" yaml:"base_url"`
	Path    string            `json:"path" yaml:"path"`
	Method  string            `json:"method" yaml:"method"`
	Params  map[string]any    `json:"params" yaml:"params"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

type file struct {
	Requests []Entry `json:"requests" yaml:"requests"`
}

// Catalog holds validated requests in file order.
type Catalog struct {
	names    []string
	requests map[string]api.Request
}

// Load reads a catalog from path. The extension picks the decoder; files
// without a known extension are tried as YAML then JSON.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("requests file path is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read requests file: %w", err)
	}

	parsed, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return FromEntries(parsed.Requests)
}

// FromEntries validates entries and converts them into requests.
func FromEntries(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errors.New("requests file contains no requests entries")
	}

	c := &Catalog{
		names:    make([]string, 0, len(entries)),
		requests: make(map[string]api.Request, len(entries)),
	}
	for i := range entries {
		e := sanitizeEntry(entries[i])
		req, err := buildRequest(e)
		if err != nil {
			return nil, fmt.Errorf("requests[%d]: %w", i, err)
		}
		if _, exists := c.requests[e.Name]; exists {
			return nil, fmt.Errorf("duplicate request name %q", e.Name)
		}
		c.names = append(c.names, e.Name)
		c.requests[e.Name] = req
	}
	return c, nil
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out file
		if err := d.fn(data, &out); err != nil {
			errs = append(errs, fmt.Errorf("decode %s requests: %w", d.name, err))
			continue
		}
		return out, nil
	}
	if len(errs) == 0 {
		return file{}, fmt.Errorf("requests file extension %q not recognized (expected YAML or JSON)", ext)
	}
	return file{}, errors.Join(errs...)
}

func sanitizeEntry(e Entry) Entry {
	e.Name = strings.TrimSpace(e.Name)
	e.BaseURL = strings.TrimSpace(e.BaseURL)
	e.Path = strings.TrimSpace(e.Path)
	e.Method = strings.TrimSpace(e.Method)
	if e.Method == "" {
		e.Method = api.MethodGet.String()
	}
	return e
}

func buildRequest(e Entry) (api.Request, error) {
	if e.Name == "" {
		return api.Request{}, errors.New("name is required")
	}
	if e.BaseURL == "" {
		return api.Request{}, fmt.Errorf("base_url is required for request %q", e.Name)
	}
	method, err := api.ParseMethod(e.Method)
	if err != nil {
		return api.Request{}, fmt.Errorf("request %q: %w", e.Name, err)
	}
	params, err := api.ParamsOf(e.Params)
	if err != nil {
		return api.Request{}, fmt.Errorf("request %q: %w", e.Name, err)
	}

	req := api.NewRequest(method, e.BaseURL, e.Path, params)
	for k, v := range e.Headers {
		req = req.WithHeader(k, v)
	}
	if _, ok := req.URL(); !ok {
		return api.Request{}, fmt.Errorf("request %q: base_url %q does not form a valid url", e.Name, e.BaseURL)
	}
	return req, nil
}

// Names returns request names in file order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Lookup returns the request registered under name.
func (c *Catalog) Lookup(name string) (api.Request, bool) {
	if c == nil {
		return api.Request{}, false
	}
	req, ok := c.requests[strings.TrimSpace(name)]
	return req, ok
}

// All returns every request in file order.
func (c *Catalog) All() []api.Request {
	if c == nil {
		return nil
	}
	out := make([]api.Request, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.requests[n])
	}
	return out
}
