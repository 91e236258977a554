// Package prose resolves parameter-insertion placeholders embedded in OSCAL
// control statement text. Placeholders take the form
// {{ insert: param, <id> }} with arbitrary whitespace around the tokens;
// anything that does not match the pattern passes through as literal text.
package prose

import (
	"regexp"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

// SegmentKind classifies a resolved prose segment.
type SegmentKind string

const (
	// SegmentPlain is literal text copied from the source prose.
	SegmentPlain SegmentKind = "plain"

	// SegmentParam is a parameter-insertion placeholder resolved to a
	// display label.
	SegmentParam SegmentKind = "param"
)

// Segment is one run of resolved prose. For SegmentParam segments, Text is
// the bracketed display form and ParamID the referenced parameter id.
type Segment struct {
	Kind    SegmentKind
	Text    string
	ParamID string
}

// Parameter ids mix word characters and dashes (ac-2_prm_1), so the capture
// must admit both.
var placeholderPattern = regexp.MustCompile(`\{\{\s*insert:\s*param,\s*([\w-]+)\s*\}\}`)

// Resolve splits prose on parameter placeholders and resolves each reference
// against the control-local parameters first, then the catalog-global ones.
// Literal runs between placeholders become plain segments (empty runs are
// dropped); every placeholder becomes a param segment displaying the
// parameter's label (or id) in brackets, or a visible
// "[Unknown param: <id>]" marker when neither scope defines it. The function
// is pure: no input character outside placeholder delimiters is lost.
func Resolve(text string, local, global []catalog.Parameter) []Segment {
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Kind: SegmentPlain, Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Kind: SegmentPlain, Text: text[last:m[0]]})
		}
		paramID := text[m[2]:m[3]]
		segments = append(segments, Segment{
			Kind:    SegmentParam,
			Text:    displayText(paramID, local, global),
			ParamID: paramID,
		})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Kind: SegmentPlain, Text: text[last:]})
	}
	return segments
}

// Lookup finds a parameter by id, searching the control-local scope before
// the catalog-global one. Returns nil when neither scope defines the id.
func Lookup(id string, local, global []catalog.Parameter) *catalog.Parameter {
	for i := range local {
		if local[i].ID == id {
			return &local[i]
		}
	}
	for i := range global {
		if global[i].ID == id {
			return &global[i]
		}
	}
	return nil
}

// ReferencedIDs returns the parameter ids referenced by placeholders in the
// given prose, in order of first appearance, without duplicates.
func ReferencedIDs(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

func displayText(paramID string, local, global []catalog.Parameter) string {
	param := Lookup(paramID, local, global)
	if param == nil {
		return "[Unknown param: " + paramID + "]"
	}
	if param.Label != "" {
		return "[" + param.Label + "]"
	}
	return "[" + param.ID + "]"
}
