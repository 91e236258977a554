// Package render flattens OSCAL catalog content into display-ready
// structures and produces the self-contained HTML catalog reference. All of
// it is a pure function of a catalog snapshot; nothing here mutates the
// model, so repeated renders of an unchanged catalog are byte-identical.
package render

import (
	"strings"

	"github.com/castlegate/oscalcat/pkg/catalog"
	"github.com/castlegate/oscalcat/pkg/prose"
)

// PartKind classifies a part for rendering.
type PartKind string

const (
	PartStatement PartKind = "statement"
	PartItem      PartKind = "item"
	PartGuidance  PartKind = "guidance"
	PartObjective PartKind = "assessment-objective"
	PartMethod    PartKind = "assessment-method"
	PartGeneric   PartKind = "generic"
)

// MethodKind classifies an assessment-method part by the activity it
// describes.
type MethodKind string

const (
	MethodExamine   MethodKind = "examine"
	MethodInterview MethodKind = "interview"
	MethodTest      MethodKind = "test"
	MethodGeneric   MethodKind = "generic"
)

// Method carries the flattened view of an assessment-method part: a heading
// for the activity and the prose of its direct children. Children without
// prose are skipped.
type Method struct {
	Kind    MethodKind
	Heading string
	Items   []string
}

// PartNode is a render-ready part. Statement prose is resolved into segments
// with parameter placeholders substituted; all other prose is carried as a
// single plain segment. Depth is informational and unbounded - a
// pathologically deep tree simply renders deeply nested.
type PartNode struct {
	ID       string
	Name     string
	Kind     PartKind
	Depth    int
	Segments []prose.Segment
	Links    []catalog.Link
	Children []*PartNode
	Method   *Method
}

// Prose returns the node's resolved display text, with parameter references
// shown in their bracketed form.
func (n *PartNode) Prose() string {
	var b strings.Builder
	for _, seg := range n.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// ClassifyPart maps a part name onto a PartKind. Names containing
// "assessment-method" (any case) are treated as methods regardless of exact
// form, since method part names are not perfectly standardized across
// published catalogs.
func ClassifyPart(name string) PartKind {
	if strings.Contains(strings.ToLower(name), "assessment-method") {
		return PartMethod
	}
	switch name {
	case "statement":
		return PartStatement
	case "item":
		return PartItem
	case "guidance":
		return PartGuidance
	case "assessment-objective":
		return PartObjective
	default:
		return PartGeneric
	}
}

// RenderPart flattens a part and its subtree into PartNodes, resolving
// statement prose against the control-local and catalog-global parameter
// scopes.
func RenderPart(part catalog.Part, depth int, local, global []catalog.Parameter) *PartNode {
	node := &PartNode{
		ID:    part.ID,
		Name:  part.Name,
		Kind:  ClassifyPart(part.Name),
		Depth: depth,
		Links: part.Links,
	}

	if part.Prose != "" {
		if node.Kind == PartStatement {
			node.Segments = prose.Resolve(part.Prose, local, global)
		} else {
			node.Segments = []prose.Segment{{Kind: prose.SegmentPlain, Text: part.Prose}}
		}
	}

	for _, child := range part.Parts {
		node.Children = append(node.Children, RenderPart(child, depth+1, local, global))
	}

	if node.Kind == PartMethod {
		node.Method = renderMethod(part)
	}
	return node
}

// RenderParts renders a sequence of sibling parts at the same depth.
func RenderParts(parts []catalog.Part, depth int, local, global []catalog.Parameter) []*PartNode {
	if len(parts) == 0 {
		return nil
	}
	nodes := make([]*PartNode, 0, len(parts))
	for _, part := range parts {
		nodes = append(nodes, RenderPart(part, depth, local, global))
	}
	return nodes
}

// renderMethod classifies an assessment-method part and lists the prose of
// its direct children. The first of examine/interview/test found in the
// lowered name wins; names matching none fall back to a generic heading.
func renderMethod(part catalog.Part) *Method {
	name := strings.ToLower(part.Name)
	method := &Method{Kind: MethodGeneric, Heading: "Assessment Method:"}
	switch {
	case strings.Contains(name, "examine"):
		method.Kind = MethodExamine
		method.Heading = "Examine: Review these documents and records:"
	case strings.Contains(name, "interview"):
		method.Kind = MethodInterview
		method.Heading = "Interview: Discuss with these personnel:"
	case strings.Contains(name, "test"):
		method.Kind = MethodTest
		method.Heading = "Test: Verify these mechanisms or processes:"
	}

	for _, child := range part.Parts {
		if child.Prose != "" {
			method.Items = append(method.Items, child.Prose)
		}
	}
	return method
}
