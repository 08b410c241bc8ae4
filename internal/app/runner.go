package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samvad-hq/samvad-netkit/internal/config"
	"github.com/samvad-hq/samvad-netkit/internal/logger"
	"github.com/samvad-hq/samvad-netkit/pkg/api"
	"github.com/samvad-hq/samvad-netkit/pkg/catalog"
	"github.com/samvad-hq/samvad-netkit/pkg/httpclient"
)

// Runner executes catalog requests through a shared session and writes the
// decoded bodies as indented JSON.
type Runner struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	session *api.Session
	log     logger.Logger
}

// Result is one executed catalog request.
type Result struct {
	Name string `json:"name"`
	Body any    `json:"body"`
}

// NewRunner builds a runner from config. A nil client selects the resty
// transport configured from cfg.
func NewRunner(cfg *config.Config, client httpclient.Client, log logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if client == nil {
		client = httpclient.NewRestyClientWithOptions(httpclient.Options{
			Timeout:      cfg.HTTPTimeout,
			UserAgent:    cfg.UserAgent,
			MaxRedirects: cfg.MaxRedirects,
		})
	}

	cat, err := catalog.Load(cfg.RequestsFile)
	if err != nil {
		return nil, fmt.Errorf("load requests catalog: %w", err)
	}
	log.InfoObj("requests catalog loaded", "catalog_meta", map[string]any{
		"count": len(cat.Names()),
		"names": cat.Names(),
	})

	session, err := api.NewSession(client,
		api.WithLogger(log),
		api.WithDecoder(api.JSONDecoder{DisallowUnknownFields: cfg.StrictDecoding}),
	)
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}

	return &Runner{
		cfg:     cfg,
		catalog: cat,
		session: session,
		log:     log,
	}, nil
}

// Names lists the catalog requests the runner knows about.
func (r *Runner) Names() []string {
	if r == nil {
		return nil
	}
	return r.catalog.Names()
}

// Run executes the named requests, or every catalog request when names is
// empty, and writes one JSON document per success to w. Failures are logged
// and joined into the returned error; remaining requests still run.
func (r *Runner) Run(ctx context.Context, w io.Writer, names ...string) error {
	if r == nil || r.session == nil {
		return fmt.Errorf("runner is not initialized")
	}
	if len(names) == 0 {
		names = r.catalog.Names()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := r.runOne(ctx, name)
		if err != nil {
			errs = append(errs, err)
			r.log.ErrorObj("request failed", "request_error", map[string]any{
				"name":  name,
				"error": err.Error(),
			})
			continue
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write result %s: %w", name, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) runOne(ctx context.Context, name string) (Result, error) {
	req, ok := r.catalog.Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("unknown request %q", name)
	}

	start := time.Now()
	body, err := api.Execute[any](ctx, r.session, req)
	if err != nil {
		return Result{}, fmt.Errorf("request %s: %w", name, err)
	}
	r.log.InfoObj("request completed", "request_result", map[string]any{
		"name":       name,
		"method":     req.Method().String(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return Result{Name: name, Body: body}, nil
}
