// Package catalog defines the typed in-memory model of an OSCAL control
// catalog (groups, controls, parts, parameters, back-matter resources) and
// lookup helpers over it. The model is read-mostly: rendering and resolution
// code treats a loaded Catalog as an immutable snapshot.
package catalog

// Metadata holds the catalog-level document metadata.
type Metadata struct {
	Title        string `json:"title"`
	Version      string `json:"version,omitempty"`
	LastModified string `json:"last-modified,omitempty"`
	OscalVersion string `json:"oscal-version,omitempty"`
}

// Constraint is a usage constraint attached to a parameter.
type Constraint struct {
	Description string `json:"description,omitempty"`
}

// Parameter is a named substitution variable referenced from control prose
// via {{ insert: param, <id> }} placeholders. Parameters are defined either
// catalog-wide or locally on a single control; a control-local parameter
// shadows a catalog-global one with the same id.
type Parameter struct {
	ID          string       `json:"id"`
	Label       string       `json:"label,omitempty"`
	Usage       string       `json:"usage,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
}

// Property is a name/value annotation on a control, group, or part
// (e.g. implementation-status).
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Class string `json:"class,omitempty"`
}

// Link relates a control or part to another control, a back-matter resource,
// or an external URL. Hrefs beginning with "#" are internal references.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel,omitempty"`
	RoleID string `json:"role-id,omitempty"`
}

// Part is a named fragment of control content (statement, item, guidance,
// assessment-objective, assessment-method, ...). Parts nest arbitrarily deep.
type Part struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Prose string     `json:"prose,omitempty"`
	Parts []Part     `json:"parts,omitempty"`
	Links []Link     `json:"links,omitempty"`
	Props []Property `json:"props,omitempty"`
}

// Control is a single security control. Child controls are enhancements.
type Control struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Class    string      `json:"class,omitempty"`
	Params   []Parameter `json:"params,omitempty"`
	Props    []Property  `json:"props,omitempty"`
	Links    []Link      `json:"links,omitempty"`
	Parts    []Part      `json:"parts,omitempty"`
	Controls []Control   `json:"controls,omitempty"`
}

// Group is a control family (e.g. Access Control).
type Group struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Class    string     `json:"class,omitempty"`
	Parts    []Part     `json:"parts,omitempty"`
	Props    []Property `json:"props,omitempty"`
	Controls []Control  `json:"controls,omitempty"`
}

// Resource is an externally referenced artifact in back-matter, targeted by
// links of the form "#<uuid>".
type Resource struct {
	UUID  string `json:"uuid"`
	Title string `json:"title,omitempty"`
}

// BackMatter holds the catalog's cited resources.
type BackMatter struct {
	Resources []Resource `json:"resources,omitempty"`
}

// Catalog is the root OSCAL catalog document. Absent collections are nil and
// must everywhere be treated as empty, never as an error.
type Catalog struct {
	UUID       string      `json:"uuid,omitempty"`
	Metadata   Metadata    `json:"metadata"`
	Params     []Parameter `json:"params,omitempty"`
	Groups     []Group     `json:"groups,omitempty"`
	Controls   []Control   `json:"controls,omitempty"`
	BackMatter *BackMatter `json:"back-matter,omitempty"`
}

// FindGroup returns the group with the given id, or nil.
func (c *Catalog) FindGroup(id string) *Group {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return &c.Groups[i]
		}
	}
	return nil
}

// FindControl returns the control with the given id, searching top-level
// controls, every group's controls, and nested enhancements depth-first.
// Returns nil if no control matches.
func (c *Catalog) FindControl(id string) *Control {
	if found := findControl(c.Controls, id); found != nil {
		return found
	}
	for i := range c.Groups {
		if found := findControl(c.Groups[i].Controls, id); found != nil {
			return found
		}
	}
	return nil
}

func findControl(controls []Control, id string) *Control {
	for i := range controls {
		if controls[i].ID == id {
			return &controls[i]
		}
		if found := findControl(controls[i].Controls, id); found != nil {
			return found
		}
	}
	return nil
}

// ResourceTitle returns the title of the back-matter resource with the given
// uuid. The second return value reports whether the resource exists; a catalog
// without back-matter simply has no resources.
func (c *Catalog) ResourceTitle(uuid string) (string, bool) {
	if c.BackMatter == nil {
		return "", false
	}
	for _, res := range c.BackMatter.Resources {
		if res.UUID == uuid {
			return res.Title, true
		}
	}
	return "", false
}

// TotalControls counts every group's direct controls plus the catalog's
// top-level controls. Enhancements are not counted separately, matching the
// compliance summary shown on exported reports.
func (c *Catalog) TotalControls() int {
	total := len(c.Controls)
	for i := range c.Groups {
		total += len(c.Groups[i].Controls)
	}
	return total
}

// Family returns the control family code for a control id, the portion before
// the first dash ("ac-2" -> "ac"). Ids without a dash are their own family.
func Family(controlID string) string {
	for i := 0; i < len(controlID); i++ {
		if controlID[i] == '-' {
			return controlID[:i]
		}
	}
	return controlID
}
