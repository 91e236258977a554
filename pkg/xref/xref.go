// Package xref resolves catalog link hrefs into displayable references.
// Hrefs beginning with "#" target a control or group id, or a back-matter
// resource uuid, within the same document; anything else is an external URL
// and is never resolved.
package xref

import (
	"strings"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

// Status indicates the outcome of resolving a reference.
type Status string

const (
	// StatusInternal means the href targeted an in-document control, group,
	// or back-matter resource and the target was found.
	StatusInternal Status = "internal"

	// StatusExternal means the href is a literal URL, returned verbatim and
	// browsable.
	StatusExternal Status = "external"

	// StatusUnresolved means the href looked internal ("#...") but no
	// control, group, or resource carries the target identifier.
	StatusUnresolved Status = "unresolved"
)

// Ref is a resolved reference. Display is ready for rendering: resolved
// internal targets read "<title> (<id>)", external hrefs pass through
// verbatim, and unresolved targets read "Unknown Reference (<href>)".
type Ref struct {
	Status   Status
	Rel      string
	Href     string
	TargetID string
	Display  string
}

// Browsable reports whether the reference is an external URL that can be
// opened directly.
func (r Ref) Browsable() bool {
	return r.Status == StatusExternal
}

// Resolver resolves link hrefs against a catalog snapshot.
type Resolver struct {
	cat *catalog.Catalog
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Resolve classifies and resolves a single link. Internal targets are looked
// up among control and group ids first (recursively through enhancement
// controls), then among back-matter resource uuids; the ordering is fixed so
// resolution stays deterministic even if an id and a uuid ever collide. The
// link's rel never influences resolution.
func (r *Resolver) Resolve(link catalog.Link) Ref {
	if !strings.HasPrefix(link.Href, "#") {
		return Ref{
			Status:  StatusExternal,
			Rel:     link.Rel,
			Href:    link.Href,
			Display: link.Href,
		}
	}

	targetID := strings.TrimPrefix(link.Href, "#")
	ref := Ref{Rel: link.Rel, Href: link.Href, TargetID: targetID}

	if ctrl := r.cat.FindControl(targetID); ctrl != nil {
		ref.Status = StatusInternal
		ref.Display = ctrl.Title + " (" + targetID + ")"
		return ref
	}
	if group := r.cat.FindGroup(targetID); group != nil {
		ref.Status = StatusInternal
		ref.Display = group.Title + " (" + targetID + ")"
		return ref
	}
	if title, ok := r.cat.ResourceTitle(targetID); ok {
		ref.Status = StatusInternal
		ref.Display = title + " (" + targetID + ")"
		return ref
	}

	ref.Status = StatusUnresolved
	ref.Display = "Unknown Reference (" + link.Href + ")"
	return ref
}

// ResolveAll resolves every link in order.
func (r *Resolver) ResolveAll(links []catalog.Link) []Ref {
	refs := make([]Ref, 0, len(links))
	for _, link := range links {
		refs = append(refs, r.Resolve(link))
	}
	return refs
}

// ResolveRel resolves only the links whose rel matches, preserving order.
func (r *Resolver) ResolveRel(links []catalog.Link, rel string) []Ref {
	refs := make([]Ref, 0, len(links))
	for _, link := range links {
		if link.Rel == rel {
			refs = append(refs, r.Resolve(link))
		}
	}
	return refs
}
