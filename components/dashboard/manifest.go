package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML/JSON manifest extending the widget catalog,
// e.g. white-label deployments adding their own tile types.
type CatalogManifest struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []ManifestWidget `json:"widgets" yaml:"widgets"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestWidget describes a single catalog entry within a manifest.
type ManifestWidget struct {
	Entry       CatalogEntry `json:"entry" yaml:"entry"`
	Maintainers []string     `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers catalog entries from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *CatalogManifest) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterEntry(widget.Entry); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", widget.Entry.Type, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[WidgetType]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Entry.Type == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing entry.type", idx)
		}
		if widget.Entry.Title == "" {
			return fmt.Errorf("dashboard: manifest widget %s missing entry.title", widget.Entry.Type)
		}
		if widget.Entry.DefaultSize != "" && !ValidSize(widget.Entry.DefaultSize) {
			return fmt.Errorf("dashboard: manifest widget %s has invalid default_size %q", widget.Entry.Type, widget.Entry.DefaultSize)
		}
		if _, exists := seen[widget.Entry.Type]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget type %s", widget.Entry.Type)
		}
		seen[widget.Entry.Type] = struct{}{}
	}
	return nil
}
