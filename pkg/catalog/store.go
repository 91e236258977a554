package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// document is the on-disk shape of a catalog file. Published OSCAL catalogs
// wrap the catalog object in a {"catalog": {...}} envelope; older exports in
// the wild store the bare object. Load accepts both.
type document struct {
	Catalog *Catalog `json:"catalog,omitempty"`
}

// Load reads an OSCAL catalog from a JSON file, accepting both the enveloped
// and the bare document shape.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"groups":   len(cat.Groups),
		"controls": cat.TotalControls(),
	}).Info("catalog loaded")
	return cat, nil
}

// Parse decodes catalog JSON from a byte slice, accepting both the enveloped
// and the bare document shape.
func Parse(data []byte) (*Catalog, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}
	if doc.Catalog != nil {
		return doc.Catalog, nil
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}
	return &cat, nil
}

// Save writes the catalog to a JSON file in the enveloped {"catalog": {...}}
// shape. Empty optional fields are omitted, mirroring how catalogs appear in
// published form.
func Save(cat *Catalog, path string) error {
	if cat == nil {
		return fmt.Errorf("catalog is nil")
	}

	data, err := json.MarshalIndent(document{Catalog: cat}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	logrus.WithField("path", path).Info("catalog saved")
	return nil
}
