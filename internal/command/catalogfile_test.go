package command_test

import (
	"strings"
	"testing"

	"github.com/ijwilabs/ijwi/internal/command"
)

const sampleCatalogYAML = `
catalogs:
  - name: navigation
    commands:
      - command: navigate
        aliases: ["navigate", "nav", "go"]
        description: "Start guided navigation."
  - name: custom
    commands:
      - command: lights
        aliases: ["lights on"]
`

func TestLoadCatalogsFromReader(t *testing.T) {
	t.Parallel()

	catalogs, err := command.LoadCatalogsFromReader(strings.NewReader(sampleCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalogsFromReader: %v", err)
	}
	if len(catalogs) != 2 {
		t.Fatalf("got %d catalogs, want 2", len(catalogs))
	}
	if catalogs[0].Name != "navigation" || catalogs[1].Name != "custom" {
		t.Errorf("catalog names = %q, %q", catalogs[0].Name, catalogs[1].Name)
	}
	if got := catalogs[0].Commands[0].Aliases; len(got) != 3 || got[2] != "go" {
		t.Errorf("navigate aliases = %v", got)
	}
}

func TestLoadCatalogsFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := command.LoadCatalogsFromReader(strings.NewReader(`
catalogs:
  - name: navigation
    comands: []
`))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadCatalogsFromReader_RejectsDuplicateCommands(t *testing.T) {
	t.Parallel()

	_, err := command.LoadCatalogsFromReader(strings.NewReader(`
catalogs:
  - name: navigation
    commands:
      - command: navigate
        aliases: ["navigate"]
      - command: navigate
        aliases: ["nav"]
`))
	if err == nil {
		t.Fatal("expected error for duplicate command id, got nil")
	}
}

func TestCatalogValidate(t *testing.T) {
	t.Parallel()

	if err := (command.Catalog{}).Validate(); err == nil {
		t.Error("unnamed catalog should fail validation")
	}

	missing := command.Catalog{
		Name:     "test",
		Commands: []command.Definition{{Aliases: []string{"x"}}},
	}
	if err := missing.Validate(); err == nil {
		t.Error("definition without a command id should fail validation")
	}
}

func TestBuiltinCatalogsAreValid(t *testing.T) {
	t.Parallel()

	catalogs := command.BuiltinCatalogs()
	if len(catalogs) == 0 {
		t.Fatal("no builtin catalogs")
	}
	for _, c := range catalogs {
		if err := c.Validate(); err != nil {
			t.Errorf("builtin catalog %q invalid: %v", c.Name, err)
		}
	}
}

func TestMergeCatalogs(t *testing.T) {
	t.Parallel()

	base := command.BuiltinCatalogs()
	override := command.Catalog{
		Name: command.ContextScan,
		Commands: []command.Definition{
			{Command: "scan", Aliases: []string{"sweep"}},
		},
	}
	extra := command.Catalog{
		Name: "custom",
		Commands: []command.Definition{
			{Command: "lights", Aliases: []string{"lights on"}},
		},
	}

	merged := command.MergeCatalogs(base, []command.Catalog{override, extra})
	if len(merged) != len(base)+1 {
		t.Fatalf("got %d catalogs, want %d", len(merged), len(base)+1)
	}

	for _, c := range merged {
		if c.Name == command.ContextScan {
			if len(c.Commands) != 1 || c.Commands[0].Aliases[0] != "sweep" {
				t.Errorf("scan catalog not replaced: %+v", c)
			}
		}
	}
	if merged[len(merged)-1].Name != "custom" {
		t.Errorf("unknown catalog should be appended, tail = %q", merged[len(merged)-1].Name)
	}

	// Base input is untouched.
	for _, c := range base {
		if c.Name == command.ContextScan && c.Commands[0].Aliases[0] == "sweep" {
			t.Error("MergeCatalogs modified its input")
		}
	}
}
