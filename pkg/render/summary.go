package render

import "github.com/castlegate/oscalcat/pkg/catalog"

// StatusSummary aggregates implementation status over a catalog for the
// compliance dashboard. Total counts each group's direct controls plus
// top-level controls; a control without an implementation-status property
// counts as not implemented.
type StatusSummary struct {
	Total          int
	Implemented    int
	InProgress     int
	NotApplicable  int
	NotImplemented int
}

// Summarize computes status aggregates from each control's
// implementation-status property.
func Summarize(cat *catalog.Catalog) StatusSummary {
	var summary StatusSummary
	for i := range cat.Groups {
		for j := range cat.Groups[i].Controls {
			summary.count(&cat.Groups[i].Controls[j])
		}
	}
	for i := range cat.Controls {
		summary.count(&cat.Controls[i])
	}
	return summary
}

func (s *StatusSummary) count(ctrl *catalog.Control) {
	s.Total++
	switch implementationStatus(ctrl) {
	case "implemented":
		s.Implemented++
	case "in-progress":
		s.InProgress++
	case "not-applicable":
		s.NotApplicable++
	default:
		s.NotImplemented++
	}
}
