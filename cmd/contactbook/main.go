package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/view"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Add     AddCmd           `cmd:"" help:"Add a contact and print all contacts."`
	List    ListCmd          `cmd:"" help:"Print all contacts."`
	Browse  BrowseCmd        `cmd:"" help:"Browse contacts in an interactive TUI."`
}

// Globals holds flags shared by every command.
type Globals struct {
	Seed  []string `help:"Contact file to import before the command runs (.csv, .yaml). Overrides store.seed." placeholder:"FILE"`
	Plain bool     `help:"Force plain text output even if stdout is a TTY."`
}

// AddCmd adds one contact to the seeded store.
type AddCmd struct {
	FirstName   string `arg:"" help:"First name."`
	LastName    string `arg:"" help:"Last name."`
	PhoneNumber string `arg:"" help:"Phone number (any format)."`
}

// ListCmd prints the seeded store.
type ListCmd struct{}

// BrowseCmd opens the contact browser.
type BrowseCmd struct{}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is the per-invocation state every command works against.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *contact.Manager
}

// newSession resolves config, applies flag overrides, builds the logger and
// store, and imports the configured seed files.
func newSession(g *Globals, logOut io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if len(g.Seed) > 0 {
		cfg.Store.Seed = g.Seed
	}
	if g.Plain {
		cfg.Display.Plain = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level, logOut)
	if err != nil {
		return nil, err
	}

	store := contact.NewManager(contact.WithLogger(logger))
	if err := seedStore(store, cfg.Store.Seed, logger); err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: store}, nil
}

// seedStore imports each seed file in order.
func seedStore(store *contact.Manager, seeds []string, logger *zap.Logger) error {
	for _, name := range seeds {
		fsys, rel := seedFS(name)
		n, err := contact.ImportFile(fsys, rel, store)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("seed imported", zap.String("file", name), zap.Int("contacts", n))
	}
	return nil
}

// seedFS picks the filesystem a seed path is read from. Relative paths go
// through the overlay so bundled samples resolve when no local file exists;
// absolute or parent-relative paths are read from disk directly.
func seedFS(name string) (fs.FS, string) {
	slashed := filepath.ToSlash(name)
	if filepath.IsAbs(name) || !fs.ValidPath(slashed) {
		return os.DirFS(filepath.Dir(name)), filepath.Base(name)
	}
	return contactbook.OverlayFS(".", contactbook.Fixtures), slashed
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	s, err := newSession(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer func() { _ = s.logger.Sync() }()

	d := view.NewDisplay(view.Options{Writer: os.Stdout, ForcePlain: s.cfg.Display.Plain})
	return a.run(s.store, d)
}

// run adds the contact and renders the store, enabling testable wiring.
func (a *AddCmd) run(store *contact.Manager, d view.Display) error {
	if err := store.AddContact(a.FirstName, a.LastName, a.PhoneNumber); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return d.Render(store.AllContacts())
}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	s, err := newSession(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = s.logger.Sync() }()

	d := view.NewDisplay(view.Options{Writer: os.Stdout, ForcePlain: s.cfg.Display.Plain})
	return d.Render(s.store.AllContacts())
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the store and launches the browser TUI.
func (b *BrowseCmd) Run(g *Globals) error {
	if !view.IsTTY(os.Stdout) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}

	s, err := newSession(g, io.Discard)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	prog := tea.NewProgram(view.NewBrowser(s.store.AllContacts()), tea.WithAltScreen())
	return b.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (b *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrInvalidContactField) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("Manage an in-memory contact list."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
