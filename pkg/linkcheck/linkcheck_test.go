package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

func TestCollect(t *testing.T) {
	cat := &catalog.Catalog{
		Groups: []catalog.Group{
			{
				ID: "ac",
				Controls: []catalog.Control{
					{
						ID: "ac-1",
						Links: []catalog.Link{
							{Href: "https://example.com/one", Rel: "reference"},
							{Href: "#ac-2", Rel: "related"}, // internal, not collected
						},
						Parts: []catalog.Part{
							{
								Name: "statement",
								Parts: []catalog.Part{
									{Name: "item", Links: []catalog.Link{{Href: "https://example.com/nested"}}},
								},
							},
						},
						Controls: []catalog.Control{
							{ID: "ac-1.1", Links: []catalog.Link{{Href: "https://example.com/enh"}}},
						},
					},
				},
			},
		},
		Controls: []catalog.Control{
			{ID: "top-1", Links: []catalog.Link{{Href: "https://example.com/top"}}},
		},
	}

	inputs := Collect(cat)
	if len(inputs) != 4 {
		t.Fatalf("got %d inputs, want 4: %#v", len(inputs), inputs)
	}
	if inputs[0].SourceContext != "control ac-1" {
		t.Errorf("context = %q", inputs[0].SourceContext)
	}
	for _, input := range inputs {
		if strings.HasPrefix(input.URI, "#") {
			t.Errorf("internal href %q must not be collected", input.URI)
		}
	}
}

func TestCheck_Valid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewChecker(Config{DomainDelay: 0})
	result := checker.Check(context.Background(), Input{URI: srv.URL})
	if result.Status != StatusValid {
		t.Errorf("Status = %q (%s)", result.Status, result.Error)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", result.StatusCode)
	}
}

func TestCheck_HeadFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewChecker(Config{DomainDelay: 0})
	result := checker.Check(context.Background(), Input{URI: srv.URL})
	if result.Status != StatusValid {
		t.Errorf("Status = %q, want valid after GET fallback", result.Status)
	}
}

func TestCheck_Invalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	checker := NewChecker(Config{DomainDelay: 0})
	result := checker.Check(context.Background(), Input{URI: srv.URL})
	if result.Status != StatusInvalid || result.StatusCode != http.StatusNotFound {
		t.Errorf("result = %#v", result)
	}
}

func TestCheck_SkipsRelativeURI(t *testing.T) {
	checker := NewChecker(DefaultConfig())
	result := checker.Check(context.Background(), Input{URI: "docs/guide.html"})
	if result.Status != StatusSkipped {
		t.Errorf("Status = %q, want skipped", result.Status)
	}
}

func TestCheckAll_Report(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewChecker(Config{DomainDelay: 0})
	report := checker.CheckAll(context.Background(), []Input{
		{URI: srv.URL + "/ok", SourceContext: "control ac-1"},
		{URI: srv.URL + "/bad", SourceContext: "control ac-2"},
	})

	if report.Total() != 2 || report.Valid != 1 || report.Invalid != 1 {
		t.Errorf("report = %+v", report)
	}

	text := report.Text()
	if !strings.Contains(text, "1 valid, 1 invalid") {
		t.Errorf("summary line missing: %q", text)
	}
	if !strings.Contains(text, "control ac-2") {
		t.Errorf("failed link context missing: %q", text)
	}
	if strings.Contains(text, "/ok") {
		t.Errorf("valid links should not be listed: %q", text)
	}
}

func TestCheckAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewChecker(DefaultConfig())
	report := checker.CheckAll(ctx, []Input{{URI: "https://example.com"}})
	if report.Total() != 0 {
		t.Errorf("cancelled run should check nothing, got %d", report.Total())
	}
}
