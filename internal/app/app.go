// Package app wires all ijwi subsystems into a running application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run executes the main transcript-processing loop, and Shutdown
// tears everything down in order.
//
// For testing, inject mock implementations via functional options
// (WithContactStore, WithSpeechQueue, etc.). When an option is not provided,
// New creates real implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ijwilabs/ijwi/internal/command"
	"github.com/ijwilabs/ijwi/internal/config"
	"github.com/ijwilabs/ijwi/internal/contact"
	"github.com/ijwilabs/ijwi/internal/match"
	"github.com/ijwilabs/ijwi/internal/observe"
	"github.com/ijwilabs/ijwi/internal/speech"
	"github.com/ijwilabs/ijwi/pkg/provider/stt"
	"github.com/ijwilabs/ijwi/pkg/provider/tts"
	"github.com/ijwilabs/ijwi/pkg/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Providers holds one interface value per provider slot. Both must be set;
// main.go populates them from flags (console providers in demo mode).
type Providers struct {
	STT stt.Provider
	TTS tts.Speaker
}

// emergencyPhrases are call parameters that divert to the emergency path.
var emergencyPhrases = []string{"emergency", "for help", "help"}

// contextSwitches maps a resolved command id to the context that becomes
// active after it executes. Commands not listed keep the current context.
var contextSwitches = map[string]string{
	"navigate":         command.ContextNavigation,
	"scan":             command.ContextScan,
	"emergency":        command.ContextEmergency,
	"call":             command.ContextCalls,
	"answer":           command.ContextCalls,
	"home":             command.ContextGlobal,
	"back":             command.ContextGlobal,
	"stop_navigation":  command.ContextGlobal,
	"hang_up":          command.ContextGlobal,
	"cancel_emergency": command.ContextGlobal,
}

// App owns all subsystem lifetimes and orchestrates the voice-command loop.
type App struct {
	cfg       *config.Config
	providers *Providers

	resolver *command.Resolver
	catalogs []command.Catalog
	contacts contact.Store
	queue    *speech.Queue
	metrics  *observe.Metrics

	// mu guards the mutable session state below.
	mu        sync.Mutex
	active    string // name of the active context catalog
	lastFinal string // previous final transcript, for debouncing

	// lastDepth is the queue depth most recently pushed to the up-down
	// counter, which only accepts deltas.
	depthMu   sync.Mutex
	lastDepth int64

	// closers are called in order during Shutdown.
	closers []func() error

	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithContactStore injects a contact store instead of creating one from
// config.
func WithContactStore(s contact.Store) Option {
	return func(a *App) { a.contacts = s }
}

// WithSpeechQueue injects a speech queue instead of creating one around the
// TTS provider.
func WithSpeechQueue(q *speech.Queue) Option {
	return func(a *App) { a.queue = q }
}

// WithMetrics injects a metrics instance instead of using the global default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithCatalogs replaces the built-in catalogs entirely. Mainly for tests;
// deployments extend the built-ins via the catalogs.path config instead.
func WithCatalogs(catalogs []command.Catalog) Option {
	return func(a *App) { a.catalogs = catalogs }
}

// New creates an App by wiring all subsystems together. The providers struct
// comes from main.go. Use Option functions to inject test doubles for any
// subsystem.
func New(ctx context.Context, cfg *config.Config, providers *Providers, opts ...Option) (*App, error) {
	a := &App{
		cfg:       cfg,
		providers: providers,
		active:    command.ContextGlobal,
	}
	for _, o := range opts {
		o(a)
	}

	if err := a.initCatalogs(); err != nil {
		return nil, fmt.Errorf("app: init catalogs: %w", err)
	}
	if err := a.initContacts(ctx); err != nil {
		return nil, fmt.Errorf("app: init contacts: %w", err)
	}

	a.resolver = command.New(
		command.WithThreshold(cfg.Matching.Threshold),
		command.WithMaxSuggestions(cfg.Matching.MaxSuggestions),
	)

	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	if a.queue == nil {
		a.queue = speech.New(providers.TTS, speech.WithDepthFunc(a.reportQueueDepth))
		a.closers = append(a.closers, a.queue.Close)
	}

	return a, nil
}

// reportQueueDepth converts the queue's absolute depth into the deltas the
// up-down counter expects.
func (a *App) reportQueueDepth(depth int) {
	a.depthMu.Lock()
	delta := int64(depth) - a.lastDepth
	a.lastDepth = int64(depth)
	a.depthMu.Unlock()

	if delta != 0 {
		a.metrics.SpeechQueueDepth.Add(context.Background(), delta)
	}
}

// initCatalogs loads the built-in catalogs and merges any configured
// overrides over them.
func (a *App) initCatalogs() error {
	if a.catalogs == nil {
		a.catalogs = command.BuiltinCatalogs()
	}

	if path := a.cfg.Catalogs.Path; path != "" {
		extra, err := command.LoadCatalogFile(path)
		if err != nil {
			return err
		}
		a.catalogs = command.MergeCatalogs(a.catalogs, extra)
		slog.Info("merged catalog overrides", "path", path, "count", len(extra))
	}
	return nil
}

// initContacts selects the contact store backend and imports the YAML
// directory when configured.
func (a *App) initContacts(ctx context.Context) error {
	if a.contacts == nil {
		if dsn := a.cfg.Contacts.PostgresDSN; dsn != "" {
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			store := contact.NewPostgresStore(pool)
			if err := store.Migrate(ctx); err != nil {
				pool.Close()
				return err
			}
			a.contacts = store
			a.closers = append(a.closers, func() error {
				pool.Close()
				return nil
			})
		} else {
			a.contacts = contact.NewMemStore()
		}
	}

	if path := a.cfg.Contacts.Path; path != "" {
		n, err := contact.ImportContacts(ctx, a.contacts, path)
		if err != nil {
			return err
		}
		slog.Info("imported contacts", "path", path, "count", n)
	}
	return nil
}

// Run opens an STT session and processes final transcripts until ctx is
// cancelled or the transcript stream ends.
func (a *App) Run(ctx context.Context) error {
	names, err := a.contactNames(ctx)
	if err != nil {
		return fmt.Errorf("app: list contacts: %w", err)
	}

	session, err := a.providers.STT.Listen(ctx, stt.StreamConfig{
		Language: a.cfg.Speech.Language,
		Keywords: names,
	})
	if err != nil {
		return fmt.Errorf("app: open stt session: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer session.Close()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case t, ok := <-session.Transcripts():
				if !ok {
					return nil
				}
				if !t.IsFinal || t.Text == "" {
					continue
				}
				a.handleFinal(ctx, t)
			}
		}
	})

	slog.Info("app running", "catalogs", len(a.catalogs), "language", a.cfg.Speech.Language)
	return g.Wait()
}

// handleFinal resolves one final transcript and executes the result.
func (a *App) handleFinal(ctx context.Context, t types.Transcript) {
	text := strings.TrimSpace(t.Text)

	// Recognisers often emit the same final twice in a row; drop exact
	// consecutive duplicates.
	a.mu.Lock()
	if text == a.lastFinal {
		a.mu.Unlock()
		slog.Debug("dropped duplicate final", "text", text)
		return
	}
	a.lastFinal = text
	active := a.active
	a.mu.Unlock()

	start := time.Now()
	res, catalogName := a.resolve(text, active)
	a.metrics.ResolveDuration.Record(ctx, time.Since(start).Seconds())

	if res == nil {
		a.metrics.RecordMiss(ctx)
		a.suggest(ctx, text, active)
		return
	}

	a.metrics.RecordMatch(ctx, string(res.Stage), catalogName)
	slog.Info("resolved command",
		"text", text,
		"command", res.Command,
		"catalog", catalogName,
		"stage", res.Stage,
		"confidence", res.Confidence,
	)

	a.execute(ctx, text, res)
}

// resolve tries the active context catalog first, then the global catalog,
// then falls through the remaining catalogs so context-entry commands stay
// reachable from anywhere ("scan" while navigating). The calls catalog is
// tried before the rest of the fall-through set because "call X" phrasing
// collides with the emergency catalog's "call emergency" alias at the
// per-word stage.
func (a *App) resolve(text, active string) (*command.Result, string) {
	tried := make(map[string]bool, len(a.catalogs))
	order := []string{active, command.ContextGlobal, command.ContextCalls}
	for _, name := range order {
		if tried[name] {
			continue
		}
		tried[name] = true
		if cat, ok := a.findCatalog(name); ok {
			if res := a.resolver.Match(text, cat); res != nil {
				return res, cat.Name
			}
		}
	}
	for _, cat := range a.catalogs {
		if tried[cat.Name] {
			continue
		}
		if res := a.resolver.Match(text, cat); res != nil {
			return res, cat.Name
		}
	}
	return nil, ""
}

// execute performs the side effects of a resolved command: context switches,
// the call path, and the spoken confirmation.
func (a *App) execute(ctx context.Context, text string, res *command.Result) {
	if next, ok := contextSwitches[res.Command]; ok {
		a.mu.Lock()
		a.active = next
		a.mu.Unlock()
		slog.Debug("context switch", "command", res.Command, "context", next)
	}

	if res.Command == "call" {
		a.handleCall(ctx, text)
		return
	}

	a.speak(ctx, confirmationText(res.Command), false)
}

// handleCall routes "call X" through the complex parser and the contact
// directory.
func (a *App) handleCall(ctx context.Context, text string) {
	calls, ok := a.findCatalog(command.ContextCalls)
	if !ok {
		return
	}

	parsed := a.resolver.ParseComplex(text, calls)
	if parsed.Parameter == "" {
		a.speak(ctx, "Who would you like to call?", false)
		return
	}

	// "call emergency" / "call for help" belong to the emergency path, not
	// the contact directory.
	if m := match.FindBestMatch(parsed.Parameter, emergencyPhrases, command.DefaultThreshold); m.Match != "" {
		a.mu.Lock()
		a.active = command.ContextEmergency
		a.mu.Unlock()
		a.speak(ctx, "Calling your emergency contact.", false)
		return
	}

	contacts, err := a.contacts.List(ctx)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		a.speak(ctx, "I could not reach your contacts.", false)
		return
	}

	c, m := contact.MatchContact(parsed.Parameter, contacts, a.cfg.Matching.ContactThreshold)
	a.metrics.RecordContactMatch(ctx, c != nil)
	if c == nil {
		a.speak(ctx, fmt.Sprintf("I could not find a contact named %s.", parsed.Parameter), false)
		return
	}

	slog.Info("calling contact", "name", c.Name, "confidence", m.Confidence)
	a.speak(ctx, fmt.Sprintf("Calling %s.", c.Name), false)
}

// suggest speaks a "did you mean" prompt built from the active and global
// catalogs.
func (a *App) suggest(ctx context.Context, text, active string) {
	a.metrics.SuggestionRequests.Add(ctx, 1)

	cat, ok := a.findCatalog(active)
	if !ok {
		cat, ok = a.findCatalog(command.ContextGlobal)
		if !ok {
			return
		}
	}

	suggestions := a.resolver.Suggestions(text, cat)
	if len(suggestions) == 0 {
		a.speak(ctx, "I did not understand that.", false)
		return
	}
	a.speak(ctx, "Did you mean: "+strings.Join(suggestions, ", ")+"?", false)
}

// speak enqueues text on the speech queue with the configured voice options.
func (a *App) speak(ctx context.Context, text string, interrupt bool) {
	a.queue.Enqueue(text, types.SpeechOptions{
		Rate:      a.cfg.Speech.Rate,
		Language:  a.cfg.Speech.Language,
		Interrupt: interrupt,
	})
}

// findCatalog returns the catalog with the given name.
func (a *App) findCatalog(name string) (command.Catalog, bool) {
	for _, cat := range a.catalogs {
		if cat.Name == name {
			return cat, true
		}
	}
	return command.Catalog{}, false
}

// contactNames collects display names and spoken forms for STT keyword
// boosting.
func (a *App) contactNames(ctx context.Context) ([]string, error) {
	contacts, err := a.contacts.List(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, c := range contacts {
		names = append(names, c.Name)
		names = append(names, c.SpokenForms...)
	}
	return names, nil
}

// ActiveContext returns the name of the currently active context catalog.
func (a *App) ActiveContext() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Shutdown tears down all subsystems in order. It respects the context
// deadline: if ctx expires before all closers finish, remaining closers are
// skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "error", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}

// confirmationText maps a command id to its spoken acknowledgement.
func confirmationText(cmd string) string {
	switch cmd {
	case "navigate":
		return "Starting navigation. Where to?"
	case "stop_navigation":
		return "Navigation stopped."
	case "scan":
		return "Scanning your surroundings."
	case "describe":
		return "Describing the scene."
	case "read_text":
		return "Reading the text."
	case "emergency", "emergency_call":
		return "Calling your emergency contact."
	case "cancel_emergency":
		return "Emergency cancelled."
	case "answer":
		return "Answering the call."
	case "hang_up":
		return "Call ended."
	case "help":
		return "Say navigate, scan, call, or emergency."
	case "home":
		return "Back to the home screen."
	case "back":
		return "Going back."
	case "repeat":
		return "Repeating the last message."
	case "where_am_i":
		return "Checking your location."
	case "directions":
		return "Getting directions."
	case "stop":
		return "Stopped."
	default:
		return strings.ReplaceAll(cmd, "_", " ") + "."
	}
}
