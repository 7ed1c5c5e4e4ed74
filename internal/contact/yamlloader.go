package contact

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ContactsFile is the YAML document shape for a contact directory file.
//
//	contacts:
//	  - name: "UWIMANA Lucy"
//	    number: "+250780000001"
//	    spoken_forms: ["lucy"]
type ContactsFile struct {
	Contacts []Contact `yaml:"contacts"`
}

// LoadContactsFile reads a contact directory from the YAML file at path.
func LoadContactsFile(path string) ([]Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("contact: open %q: %w", path, err)
	}
	defer f.Close()

	contacts, err := LoadContactsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("contact: load %q: %w", path, err)
	}
	return contacts, nil
}

// LoadContactsFromReader decodes a [ContactsFile] document. Unknown YAML
// fields are rejected. Every entry must have a non-empty name.
func LoadContactsFromReader(r io.Reader) ([]Contact, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file ContactsFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("contact: decode contacts file: %w", err)
	}

	for i, c := range file.Contacts {
		if c.Name == "" {
			return nil, fmt.Errorf("contact: entry %d has no name", i)
		}
	}
	return file.Contacts, nil
}

// ImportContacts loads the YAML file at path and bulk-imports its entries
// into store, returning the number of contacts added.
func ImportContacts(ctx context.Context, store Store, path string) (int, error) {
	contacts, err := LoadContactsFile(path)
	if err != nil {
		return 0, err
	}
	return store.BulkImport(ctx, contacts)
}
