// Package linkcheck validates the external reference URLs of an OSCAL
// catalog over HTTP, with per-domain request spacing. Internal "#id"
// references are resolved statically by pkg/xref and are not checked here.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

// Status represents the validation outcome for one link.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Input is a link to validate, with the catalog location it came from.
type Input struct {
	URI           string
	SourceContext string
}

// Result captures the outcome of validating a single link.
type Result struct {
	URI            string
	Status         Status
	StatusCode     int
	Error          string
	SourceContext  string
	ResponseTimeMs int64
}

// Config controls checker behavior.
type Config struct {
	Timeout     time.Duration
	DomainDelay time.Duration
	UserAgent   string
}

// DefaultConfig returns conservative defaults suitable for public sites.
func DefaultConfig() Config {
	return Config{
		Timeout:     10 * time.Second,
		DomainDelay: 500 * time.Millisecond,
		UserAgent:   "oscalcat-linkcheck/1.0",
	}
}

// Checker validates external links sequentially, spacing requests to the
// same domain by at least Config.DomainDelay.
type Checker struct {
	config Config
	client *http.Client

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewChecker creates a checker with the given configuration.
func NewChecker(config Config) *Checker {
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return &Checker{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		lastSeen: make(map[string]time.Time),
	}
}

// Collect walks the catalog and returns every external link href, with the
// control or group it appears on as context. Internal "#" hrefs are omitted.
func Collect(cat *catalog.Catalog) []Input {
	var inputs []Input
	add := func(links []catalog.Link, context string) {
		for _, link := range links {
			if link.Href != "" && link.Href[0] != '#' {
				inputs = append(inputs, Input{URI: link.Href, SourceContext: context})
			}
		}
	}

	var walkParts func(parts []catalog.Part, context string)
	walkParts = func(parts []catalog.Part, context string) {
		for _, part := range parts {
			add(part.Links, context)
			walkParts(part.Parts, context)
		}
	}
	var walkControls func(controls []catalog.Control)
	walkControls = func(controls []catalog.Control) {
		for _, ctrl := range controls {
			context := "control " + ctrl.ID
			add(ctrl.Links, context)
			walkParts(ctrl.Parts, context)
			walkControls(ctrl.Controls)
		}
	}

	for _, group := range cat.Groups {
		walkParts(group.Parts, "group "+group.ID)
		walkControls(group.Controls)
	}
	walkControls(cat.Controls)
	return inputs
}

// CheckAll validates every input in order and returns the report. The
// context cancels the remaining work; already-gathered results are kept.
func (c *Checker) CheckAll(ctx context.Context, inputs []Input) *Report {
	report := &Report{CheckedAt: time.Now()}
	for _, input := range inputs {
		if ctx.Err() != nil {
			break
		}
		result := c.Check(ctx, input)
		report.add(result)
		logrus.WithFields(logrus.Fields{
			"uri":    result.URI,
			"status": result.Status,
			"code":   result.StatusCode,
		}).Debug("link checked")
	}
	return report
}

// Check validates a single link with a HEAD request, falling back to GET
// when the server rejects HEAD. Unparseable URIs are skipped, not failed.
func (c *Checker) Check(ctx context.Context, input Input) Result {
	result := Result{URI: input.URI, SourceContext: input.SourceContext}

	parsed, err := url.Parse(input.URI)
	if err != nil || parsed.Host == "" {
		result.Status = StatusSkipped
		result.Error = "not an absolute URL"
		return result
	}

	c.waitForDomain(parsed.Host)

	start := time.Now()
	code, err := c.request(ctx, http.MethodHead, input.URI)
	if err == nil && code == http.StatusMethodNotAllowed {
		code, err = c.request(ctx, http.MethodGet, input.URI)
	}
	result.ResponseTimeMs = time.Since(start).Milliseconds()

	switch {
	case err != nil:
		result.Status = StatusError
		result.Error = err.Error()
	case code >= 200 && code < 400:
		result.Status = StatusValid
		result.StatusCode = code
	default:
		result.Status = StatusInvalid
		result.StatusCode = code
	}
	return result
}

func (c *Checker) request(ctx context.Context, method, uri string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// waitForDomain sleeps as needed to keep at least DomainDelay between
// requests to the same host.
func (c *Checker) waitForDomain(host string) {
	if c.config.DomainDelay <= 0 {
		return
	}

	c.mu.Lock()
	last, ok := c.lastSeen[host]
	now := time.Now()
	c.lastSeen[host] = now
	c.mu.Unlock()

	if ok {
		if wait := c.config.DomainDelay - now.Sub(last); wait > 0 {
			time.Sleep(wait)
			c.mu.Lock()
			c.lastSeen[host] = time.Now()
			c.mu.Unlock()
		}
	}
}
