package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/noteport/internal/config"
	"git.home.luguber.info/inful/noteport/internal/git"
	"git.home.luguber.info/inful/noteport/internal/logfields"
	"git.home.luguber.info/inful/noteport/internal/vault"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
	"git.home.luguber.info/inful/noteport/internal/workspace"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"noteport.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Export  ExportCmd  `cmd:"" help:"Export a document and everything it links to"`
	Count   CountCmd   `cmd:"" help:"Count reachable files without exporting"`
	Preview PreviewCmd `cmd:"" help:"Serve the export over HTTP and re-export on vault changes"`
	Links   LinksCmd   `cmd:"" help:"Report wiki and standard Markdown links in a document"`
	Verify  VerifyCmd  `cmd:"" help:"Check an export for dangling internal references"`
	History HistoryCmd `cmd:"" help:"List recent export runs"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration file and installs the configured logger.
// The -v flag always wins over the configured level.
func LoadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(cfg.Logging.NewLogger(root.Verbose))
	return cfg, nil
}

// ResolveVault resolves the export's root document, cloning the configured
// repository into a temporary workspace first when one is set. The returned
// cleanup must run after the export finishes; it is a no-op for local vaults.
func ResolveVault(cfg *config.Config, file string) (rootPath string, cleanup func(), err error) {
	cleanup = func() {}

	if !strings.HasSuffix(file, wikilink.DocSuffix) {
		file += wikilink.DocSuffix
	}

	if cfg.Repo.URL == "" {
		rootPath, err = vault.ResolveRoot(file)
		return rootPath, cleanup, err
	}

	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		return "", cleanup, fmt.Errorf("create workspace: %w", err)
	}
	cleanup = ws.Cleanup

	cloneDir, err := git.NewClient(ws.Path()).CloneVault(cfg.Repo.URL, cfg.Repo.Branch)
	if err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("clone vault: %w", err)
	}

	// Bare names are located anywhere in the clone; explicit relative paths
	// are taken relative to the clone root.
	if strings.ContainsRune(file, os.PathSeparator) {
		rootPath, err = vault.ResolveRoot(filepath.Join(cloneDir, file))
	} else if found, ok := vault.Resolve(file, cloneDir); ok {
		rootPath, err = found, nil
	} else {
		err = fmt.Errorf("%w: %s in %s", vault.ErrRootNotFound, file, cfg.Repo.URL)
	}
	if err != nil {
		cleanup()
		return "", func() {}, err
	}
	return rootPath, cleanup, nil
}

// ExportRootFor returns the per-document export directory under baseDir.
func ExportRootFor(baseDir, rootPath string) string {
	name := strings.TrimSuffix(filepath.Base(rootPath), wikilink.DocSuffix)
	return filepath.Join(baseDir, name)
}

func warnOnCleanupError(what string, err error) {
	if err != nil {
		slog.Warn("Cleanup failed", slog.String("what", what), logfields.Error(err))
	}
}
