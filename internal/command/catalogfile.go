package command

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the top-level structure of a catalog override YAML file.
//
// Example:
//
//	catalogs:
//	  - name: navigation
//	    commands:
//	      - command: navigate
//	        aliases: ["navigate", "nav", "go"]
//	        description: "Start guided navigation."
type CatalogFile struct {
	Catalogs []Catalog `yaml:"catalogs"`
}

// LoadCatalogFile reads and parses a catalog YAML file from disk and
// validates every catalog in it.
func LoadCatalogFile(path string) ([]Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("command: open catalog file %q: %w", path, err)
	}
	defer f.Close()

	catalogs, err := LoadCatalogsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("command: parse catalog file %q: %w", path, err)
	}
	return catalogs, nil
}

// LoadCatalogsFromReader parses catalog YAML from an [io.Reader]. The reader
// is consumed entirely; the caller is responsible for closing it.
func LoadCatalogsFromReader(r io.Reader) ([]Catalog, error) {
	var cf CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("command: decode catalog yaml: %w", err)
	}

	for _, c := range cf.Catalogs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return cf.Catalogs, nil
}

// MergeCatalogs overlays overrides onto base: a catalog in overrides
// replaces the base catalog with the same name, and unknown names are
// appended in order. Neither input slice is modified.
func MergeCatalogs(base, overrides []Catalog) []Catalog {
	merged := make([]Catalog, len(base))
	copy(merged, base)

	for _, o := range overrides {
		replaced := false
		for i, b := range merged {
			if b.Name == o.Name {
				merged[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}
	return merged
}
