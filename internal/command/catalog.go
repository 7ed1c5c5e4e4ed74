// Package command implements the voice-command catalog and the staged
// resolution pipeline that maps noisy speech-to-text transcripts to canonical
// command identifiers.
//
// A [Catalog] is a static, ordered table of [Definition] values, one catalog
// per application context (global, navigation, scan, emergency, calls).
// Resolution is always scoped to a single catalog at call time; the same
// alias text may map to different commands in different catalogs.
//
// Catalogs are plain data loaded once at startup and never mutated, so all
// matching entry points are safe for concurrent use.
package command

import (
	"fmt"
	"log/slog"
)

// Definition describes a single voice command: its canonical identifier, the
// spoken phrases that trigger it, and a human-readable description.
type Definition struct {
	// Command is the canonical identifier, unique within a catalog.
	Command string `yaml:"command"`

	// Aliases is the ordered list of accepted spoken phrases. Aliases are
	// lower-cased at match time; their order is priority order within the
	// command. Duplicate alias text across different commands is allowed
	// and resolves by catalog scan order.
	Aliases []string `yaml:"aliases"`

	// Description is human-readable help text. Not used in matching.
	Description string `yaml:"description"`
}

// Catalog is a named, ordered sequence of command definitions for one
// application context. Definition order is the priority order for the
// first-hit resolution stages.
type Catalog struct {
	Name     string       `yaml:"name"`
	Commands []Definition `yaml:"commands"`
}

// Validate checks structural invariants: a non-empty catalog name and
// command identifiers unique within the catalog. Commands with an empty
// alias list are legal — they simply never match — but are logged as likely
// configuration mistakes.
func (c Catalog) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command: catalog has no name")
	}
	seen := make(map[string]struct{}, len(c.Commands))
	for _, def := range c.Commands {
		if def.Command == "" {
			return fmt.Errorf("command: catalog %q contains a definition without a command id", c.Name)
		}
		if _, dup := seen[def.Command]; dup {
			return fmt.Errorf("command: catalog %q declares command %q twice", c.Name, def.Command)
		}
		seen[def.Command] = struct{}{}

		if len(def.Aliases) == 0 {
			slog.Warn("command: definition has no aliases and can never match",
				"catalog", c.Name,
				"command", def.Command,
			)
		}
	}
	return nil
}

// Well-known context names used by the built-in catalogs.
const (
	ContextGlobal     = "global"
	ContextNavigation = "navigation"
	ContextScan       = "scan"
	ContextEmergency  = "emergency"
	ContextCalls      = "calls"
)

// BuiltinCatalogs returns the compiled-in command tables, one per assistant
// context. The returned slice is freshly allocated so callers may reorder or
// extend it without affecting other callers.
func BuiltinCatalogs() []Catalog {
	return []Catalog{
		{
			Name: ContextGlobal,
			Commands: []Definition{
				{Command: "help", Aliases: []string{"help", "what can i say", "commands"}, Description: "List the commands available on this screen."},
				{Command: "home", Aliases: []string{"home", "main menu", "go home"}, Description: "Return to the main menu."},
				{Command: "back", Aliases: []string{"back", "go back", "previous"}, Description: "Go back one screen."},
				{Command: "repeat", Aliases: []string{"repeat", "say again", "again"}, Description: "Repeat the last spoken announcement."},
				{Command: "stop", Aliases: []string{"stop", "quiet", "silence"}, Description: "Stop all speech output."},
			},
		},
		{
			Name: ContextNavigation,
			Commands: []Definition{
				{Command: "navigate", Aliases: []string{"navigate", "nav", "go"}, Description: "Start guided navigation."},
				{Command: "where_am_i", Aliases: []string{"where am i", "location", "my location"}, Description: "Announce the current location."},
				{Command: "directions", Aliases: []string{"directions", "next step", "what next"}, Description: "Repeat the next navigation instruction."},
				{Command: "stop_navigation", Aliases: []string{"stop navigation", "cancel route"}, Description: "Cancel the active route."},
			},
		},
		{
			Name: ContextScan,
			Commands: []Definition{
				{Command: "scan", Aliases: []string{"scan", "scan area", "look around"}, Description: "Scan the surroundings and announce detected objects."},
				{Command: "describe", Aliases: []string{"describe", "what is this", "describe scene"}, Description: "Describe the scene in front of the camera."},
				{Command: "read_text", Aliases: []string{"read", "read text", "read this"}, Description: "Read printed text aloud."},
			},
		},
		{
			Name: ContextEmergency,
			Commands: []Definition{
				{Command: "emergency", Aliases: []string{"emergency", "help me", "sos"}, Description: "Open the emergency screen."},
				{Command: "emergency_call", Aliases: []string{"call emergency", "call for help"}, Description: "Call the configured emergency contact."},
				{Command: "cancel_emergency", Aliases: []string{"cancel", "false alarm", "i am okay"}, Description: "Dismiss the emergency alert."},
			},
		},
		{
			Name: ContextCalls,
			Commands: []Definition{
				{Command: "call", Aliases: []string{"call", "phone", "dial"}, Description: "Call a contact by name."},
				{Command: "answer", Aliases: []string{"answer", "pick up"}, Description: "Answer an incoming call."},
				{Command: "hang_up", Aliases: []string{"hang up", "end call"}, Description: "End the active call."},
			},
		},
	}
}
