// Package gen produces synthetic OSCAL catalogs for demos and fixtures. The
// generated structure exercises everything the renderer handles: parameter
// placeholders in statement prose, nested items, assessment methods, related
// and reference links, and back-matter resources.
package gen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

// families lists the family codes used for generated groups, in order.
var families = []struct {
	id    string
	title string
}{
	{"ac", "Access Control"},
	{"au", "Audit and Accountability"},
	{"cm", "Configuration Management"},
	{"ia", "Identification and Authentication"},
	{"ir", "Incident Response"},
	{"sc", "System and Communications Protection"},
	{"si", "System and Information Integrity"},
}

// statuses cycle across generated controls so that the dashboard aggregates
// are non-trivial.
var statuses = []string{"not-implemented", "in-progress", "implemented", "not-applicable"}

// Catalog generates a synthetic catalog with the given number of groups
// (capped at the known family list) and controls per group. Apart from the
// back-matter resource uuids the output is deterministic.
func Catalog(groups, controlsPerGroup int) *catalog.Catalog {
	if groups > len(families) {
		groups = len(families)
	}
	if groups < 1 {
		groups = 1
	}
	if controlsPerGroup < 1 {
		controlsPerGroup = 1
	}

	resource := catalog.Resource{
		UUID:  uuid.NewString(),
		Title: "NIST SP 800-53 Rev 5, Security and Privacy Controls",
	}

	cat := &catalog.Catalog{
		UUID: uuid.NewString(),
		Metadata: catalog.Metadata{
			Title:        "Synthetic Security Control Catalog",
			Version:      "1.0.0",
			OscalVersion: "1.1.2",
		},
		Params: []catalog.Parameter{
			{
				ID:    "org_review_frequency",
				Label: "organization-defined review frequency",
				Usage: "How often the organization reviews this control.",
			},
		},
		BackMatter: &catalog.BackMatter{Resources: []catalog.Resource{resource}},
	}

	controlIndex := 0
	for g := 0; g < groups; g++ {
		family := families[g]
		group := catalog.Group{ID: family.id, Title: family.title}
		for c := 1; c <= controlsPerGroup; c++ {
			group.Controls = append(group.Controls, control(family.id, family.title, c, resource.UUID, &controlIndex))
		}
		cat.Groups = append(cat.Groups, group)
	}
	return cat
}

func control(familyID, familyTitle string, n int, resourceUUID string, index *int) catalog.Control {
	id := fmt.Sprintf("%s-%d", familyID, n)
	paramID := fmt.Sprintf("%s_prm_1", id)

	ctrl := catalog.Control{
		ID:    id,
		Title: fmt.Sprintf("%s Requirement %d", familyTitle, n),
		Class: "SP800-53",
		Params: []catalog.Parameter{
			{
				ID:    paramID,
				Label: "organization-defined personnel or roles",
				Constraints: []catalog.Constraint{
					{Description: "Must name at least one role."},
				},
			},
		},
		Props: []catalog.Property{
			{Name: "implementation-status", Value: statuses[*index%len(statuses)]},
			{Name: "label", Value: id},
		},
		Links: []catalog.Link{
			{Href: "#" + resourceUUID, Rel: "reference"},
		},
		Parts: []catalog.Part{
			{
				ID:   id + "_smt",
				Name: "statement",
				Prose: fmt.Sprintf(
					"Assign {{ insert: param, %s }} and review the policy {{ insert: param, org_review_frequency }}.",
					paramID),
				Parts: []catalog.Part{
					{ID: id + "_smt.a", Name: "item", Prose: "Document the procedure."},
					{ID: id + "_smt.b", Name: "item", Prose: "Disseminate it to responsible staff."},
				},
			},
			{
				ID:    id + "_gdn",
				Name:  "guidance",
				Prose: "Tailor this requirement to the operating environment.",
			},
			{
				ID:   id + "_asm-examine",
				Name: "assessment-method-examine",
				Parts: []catalog.Part{
					{Name: "object", Prose: "Policy and procedure documents."},
					{Name: "object", Prose: "Records of reviews and updates."},
				},
			},
		},
	}

	// Link consecutive controls in a family so internal resolution has
	// real targets.
	if n > 1 {
		ctrl.Links = append(ctrl.Links, catalog.Link{
			Href: fmt.Sprintf("#%s-%d", familyID, n-1),
			Rel:  "related",
		})
	}

	*index++
	return ctrl
}
