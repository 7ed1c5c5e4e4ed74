package contact_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ijwilabs/ijwi/internal/contact"
)

const sampleContactsYAML = `
contacts:
  - name: "UWIMANA Lucy"
    number: "+250780000001"
    spoken_forms: ["lucy"]
  - name: "HABIMANA Bill"
    number: "+250780000002"
`

func TestLoadContactsFromReader(t *testing.T) {
	t.Parallel()

	contacts, err := contact.LoadContactsFromReader(strings.NewReader(sampleContactsYAML))
	if err != nil {
		t.Fatalf("LoadContactsFromReader: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(contacts))
	}
	if contacts[0].Name != "UWIMANA Lucy" || contacts[0].SpokenForms[0] != "lucy" {
		t.Errorf("first contact = %+v", contacts[0])
	}
	if contacts[1].SpokenForms != nil {
		t.Errorf("second contact spoken forms = %v, want none", contacts[1].SpokenForms)
	}
}

func TestLoadContactsFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := contact.LoadContactsFromReader(strings.NewReader(`
contacts:
  - name: "A"
    phone: "+250780000001"
`))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadContactsFromReader_RejectsNamelessEntry(t *testing.T) {
	t.Parallel()

	_, err := contact.LoadContactsFromReader(strings.NewReader(`
contacts:
  - number: "+250780000001"
`))
	if err == nil {
		t.Fatal("expected error for nameless entry, got nil")
	}
}

func TestImportContacts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contacts.yaml")
	if err := os.WriteFile(path, []byte(sampleContactsYAML), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	store := contact.NewMemStore()
	n, err := contact.ImportContacts(context.Background(), store, path)
	if err != nil {
		t.Fatalf("ImportContacts: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("store holds %d contacts, want 2", len(list))
	}
}
