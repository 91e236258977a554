package prose

import (
	"strings"
	"testing"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

func TestResolve_NoPlaceholders(t *testing.T) {
	segments := Resolve("Enforce approved authorizations.", nil, nil)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != SegmentPlain {
		t.Errorf("Kind = %q, want plain", segments[0].Kind)
	}
	if segments[0].Text != "Enforce approved authorizations." {
		t.Errorf("Text = %q, want original prose", segments[0].Text)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	if segments := Resolve("", nil, nil); len(segments) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(segments))
	}
}

func TestResolve_ExampleScenario(t *testing.T) {
	local := []catalog.Parameter{{ID: "ac-2_prm_1", Label: "frequency"}}
	text := "Ensure {{ insert: param, ac-2_prm_1 }} is configured per {{insert:param,ac-2_prm_2}}."

	segments := Resolve(text, local, nil)

	want := []Segment{
		{Kind: SegmentPlain, Text: "Ensure "},
		{Kind: SegmentParam, Text: "[frequency]", ParamID: "ac-2_prm_1"},
		{Kind: SegmentPlain, Text: " is configured per "},
		{Kind: SegmentParam, Text: "[Unknown param: ac-2_prm_2]", ParamID: "ac-2_prm_2"},
		{Kind: SegmentPlain, Text: "."},
	}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d: %#v", len(segments), len(want), segments)
	}
	for i, seg := range segments {
		if seg != want[i] {
			t.Errorf("segment %d = %#v, want %#v", i, seg, want[i])
		}
	}
}

// NIST-style ids carry a dash in the control prefix (ac-2_prm_1); the
// placeholder pattern must accept them, not just pure word characters.
func TestResolve_DashBearingIDs(t *testing.T) {
	local := []catalog.Parameter{{ID: "ac-2_prm_1", Label: "account types"}}

	segments := Resolve("{{ insert: param, ac-2_prm_1 }}", local, nil)
	if len(segments) != 1 || segments[0].Kind != SegmentParam {
		t.Fatalf("dash-bearing id did not match: %#v", segments)
	}
	if segments[0].Text != "[account types]" || segments[0].ParamID != "ac-2_prm_1" {
		t.Errorf("segment = %#v, want resolved param ac-2_prm_1", segments[0])
	}

	ids := ReferencedIDs("{{ insert: param, ac-2_prm_1 }} and {{ insert: param, si-4_prm_2 }}")
	if len(ids) != 2 || ids[0] != "ac-2_prm_1" || ids[1] != "si-4_prm_2" {
		t.Errorf("ReferencedIDs = %v, want [ac-2_prm_1 si-4_prm_2]", ids)
	}
}

func TestResolve_LocalShadowsGlobal(t *testing.T) {
	local := []catalog.Parameter{{ID: "prm_1", Label: "local label"}}
	global := []catalog.Parameter{{ID: "prm_1", Label: "global label"}}

	segments := Resolve("{{ insert: param, prm_1 }}", local, global)
	if len(segments) != 1 || segments[0].Text != "[local label]" {
		t.Errorf("expected control-local label, got %#v", segments)
	}
}

func TestResolve_GlobalFallback(t *testing.T) {
	global := []catalog.Parameter{{ID: "prm_1", Label: "global label"}}

	segments := Resolve("{{ insert: param, prm_1 }}", nil, global)
	if len(segments) != 1 || segments[0].Text != "[global label]" {
		t.Errorf("expected global label fallback, got %#v", segments)
	}
}

func TestResolve_LabelFallsBackToID(t *testing.T) {
	local := []catalog.Parameter{{ID: "prm_1"}}

	segments := Resolve("{{ insert: param, prm_1 }}", local, nil)
	if len(segments) != 1 || segments[0].Text != "[prm_1]" {
		t.Errorf("expected id as display text, got %#v", segments)
	}
}

func TestResolve_MalformedPlaceholdersPassThrough(t *testing.T) {
	cases := []string{
		"{{ insert param, prm_1 }}",  // missing colon
		"{{ insert: param prm_1 }}",  // missing comma
		"{ insert: param, prm_1 }",   // single braces
		"{{ insert: value, prm_1 }}", // wrong keyword
		"{{ insert: param, prm_1 }",  // unbalanced
	}
	for _, text := range cases {
		segments := Resolve(text, nil, nil)
		if len(segments) != 1 || segments[0].Kind != SegmentPlain || segments[0].Text != text {
			t.Errorf("malformed placeholder %q should pass through unchanged, got %#v", text, segments)
		}
	}
}

// Concatenating the plain segments and skipping param decorations must
// reconstruct the original non-placeholder text in order.
func TestResolve_PreservesSurroundingText(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"before {{ insert: param, a }} after", "before  after"},
		{"{{ insert: param, a }}{{ insert: param, b }}", ""},
		{"x{{ insert: param, a }}y{{ insert: param, b }}z", "xyz"},
		{"plain only", "plain only"},
	}
	for _, tc := range cases {
		var b strings.Builder
		for _, seg := range Resolve(tc.text, nil, nil) {
			if seg.Kind == SegmentPlain {
				b.WriteString(seg.Text)
			}
		}
		if b.String() != tc.want {
			t.Errorf("Resolve(%q) plain text = %q, want %q", tc.text, b.String(), tc.want)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	local := []catalog.Parameter{{ID: "a", Label: "alpha"}}
	text := "use {{ insert: param, a }} here"

	first := Resolve(text, local, nil)
	second := Resolve(text, local, nil)
	if len(first) != len(second) {
		t.Fatalf("segment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between calls: %#v vs %#v", i, first[i], second[i])
		}
	}
}

func TestReferencedIDs(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"none", "no placeholders here", nil},
		{"single", "{{ insert: param, a }}", []string{"a"}},
		{"ordered", "{{ insert: param, b }} then {{ insert: param, a }}", []string{"b", "a"}},
		{"deduplicated", "{{ insert: param, a }} and {{ insert: param, a }}", []string{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReferencedIDs(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("ReferencedIDs(%q) = %v, want %v", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("ReferencedIDs(%q)[%d] = %q, want %q", tc.text, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLookup_ScopeOrder(t *testing.T) {
	local := []catalog.Parameter{{ID: "shared", Label: "local"}}
	global := []catalog.Parameter{{ID: "shared", Label: "global"}, {ID: "global-only", Label: "g"}}

	if p := Lookup("shared", local, global); p == nil || p.Label != "local" {
		t.Errorf("Lookup(shared) = %#v, want local scope", p)
	}
	if p := Lookup("global-only", local, global); p == nil || p.Label != "g" {
		t.Errorf("Lookup(global-only) = %#v, want global parameter", p)
	}
	if p := Lookup("missing", local, global); p != nil {
		t.Errorf("Lookup(missing) = %#v, want nil", p)
	}
}
