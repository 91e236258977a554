package render

import (
	"github.com/castlegate/oscalcat/pkg/catalog"
	"github.com/castlegate/oscalcat/pkg/prose"
	"github.com/castlegate/oscalcat/pkg/xref"
)

// StatusOptions are the selectable implementation statuses, in display order.
var StatusOptions = []string{"not-implemented", "in-progress", "implemented", "not-applicable"}

// ImplementationGuidance is the fixed guidance block shown with every
// control. Real per-control guidance is authored outside the catalog.
const ImplementationGuidance = "Example: For access control, configure role-based access using a tool like AWS IAM or Active Directory."

// ParamDetail is the descriptive block shown for one parameter.
type ParamDetail struct {
	ID          string
	Label       string
	Usage       string
	Constraints []string
}

// EnhancementRef identifies a child enhancement control.
type EnhancementRef struct {
	ID    string
	Title string
}

// ControlView is the flattened, display-ready form of a single control. Both
// the HTML exporter and the HTTP presentation build on it.
type ControlView struct {
	ID           string
	Title        string
	Summary      string
	Class        string
	Props        []catalog.Property
	Guidance     string
	Status       string
	Params       []ParamDetail
	Parts        []*PartNode
	Related      []xref.Ref
	References   []xref.Ref
	Roles        []string
	Enhancements []EnhancementRef
}

// NewControlView flattens a control against its catalog: parts are rendered
// with parameters resolved, related and reference links resolved through the
// cross-reference resolver, and the parameter list aggregated with referenced
// parameters first.
func NewControlView(ctrl *catalog.Control, cat *catalog.Catalog) *ControlView {
	resolver := xref.NewResolver(cat)

	view := &ControlView{
		ID:         ctrl.ID,
		Title:      ctrl.Title,
		Summary:    ControlSummary(ctrl.ID),
		Class:      ctrl.Class,
		Props:      ctrl.Props,
		Guidance:   ImplementationGuidance,
		Status:     implementationStatus(ctrl),
		Params:     AggregateParams(ctrl, cat.Params),
		Parts:      RenderParts(ctrl.Parts, 0, ctrl.Params, cat.Params),
		Related:    resolver.ResolveRel(ctrl.Links, "related"),
		References: resolver.ResolveRel(ctrl.Links, "reference"),
	}

	for _, link := range ctrl.Links {
		if link.Rel == "responsible-role" && link.RoleID != "" {
			view.Roles = append(view.Roles, link.RoleID)
		}
	}
	for _, child := range ctrl.Controls {
		view.Enhancements = append(view.Enhancements, EnhancementRef{ID: child.ID, Title: child.Title})
	}
	return view
}

// AggregateParams produces the deduplicated parameter list for a control's
// detail view: parameters referenced by statement placeholders first, in
// order of first appearance, each resolved control-local before
// catalog-global; then any remaining control-local parameters. Global
// parameters never appear unless referenced, and no id is emitted twice.
func AggregateParams(ctrl *catalog.Control, globals []catalog.Parameter) []ParamDetail {
	var details []ParamDetail
	emitted := make(map[string]bool)

	for _, id := range referencedParamIDs(ctrl.Parts) {
		param := prose.Lookup(id, ctrl.Params, globals)
		if param == nil || emitted[param.ID] {
			continue
		}
		emitted[param.ID] = true
		details = append(details, paramDetail(*param))
	}

	for _, param := range ctrl.Params {
		if emitted[param.ID] {
			continue
		}
		emitted[param.ID] = true
		details = append(details, paramDetail(param))
	}
	return details
}

// referencedParamIDs collects parameter ids referenced from statement prose
// anywhere in the part tree, in order of first appearance.
func referencedParamIDs(parts []catalog.Part) []string {
	var ids []string
	seen := make(map[string]bool)
	var walk func([]catalog.Part)
	walk = func(parts []catalog.Part) {
		for _, part := range parts {
			if part.Name == "statement" && part.Prose != "" {
				for _, id := range prose.ReferencedIDs(part.Prose) {
					if !seen[id] {
						seen[id] = true
						ids = append(ids, id)
					}
				}
			}
			walk(part.Parts)
		}
	}
	walk(parts)
	return ids
}

func paramDetail(param catalog.Parameter) ParamDetail {
	detail := ParamDetail{ID: param.ID, Label: param.Label, Usage: param.Usage}
	for _, constraint := range param.Constraints {
		if constraint.Description != "" {
			detail.Constraints = append(detail.Constraints, constraint.Description)
		}
	}
	return detail
}

func implementationStatus(ctrl *catalog.Control) string {
	for _, prop := range ctrl.Props {
		if prop.Name == "implementation-status" {
			return prop.Value
		}
	}
	return ""
}
