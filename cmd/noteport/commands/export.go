package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/noteport/internal/config"
	"git.home.luguber.info/inful/noteport/internal/export"
	"git.home.luguber.info/inful/noteport/internal/history"
	"git.home.luguber.info/inful/noteport/internal/linkcheck"
	"git.home.luguber.info/inful/noteport/internal/logfields"
	"git.home.luguber.info/inful/noteport/internal/notify"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	File   string `arg:"" help:"Root document: a path or a bare note name (.md optional)"`
	Output string `short:"o" help:"Base directory for export output (overrides config)"`
	Depth  *int   `short:"d" help:"Maximum document-link traversal depth (omit for unbounded)"`
	HTML   *bool  `help:"Render the root document to a standalone HTML page"`
	Verify bool   `help:"Verify internal references in the produced HTML afterwards"`
	Repo   string `help:"Clone this git repository and export from the clone"`
	Branch string `help:"Branch to clone with --repo"`
}

func (e *ExportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	e.applyOverrides(cfg)

	rootPath, cleanup, err := ResolveVault(cfg, e.File)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := RunExport(context.Background(), cfg, rootPath)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d of %d expected files to %s\n",
		result.Report.Copied, result.Report.Expected, result.OutputRoot)
	return nil
}

func (e *ExportCmd) applyOverrides(cfg *config.Config) {
	if e.Output != "" {
		cfg.Export.BaseDir = e.Output
	}
	if e.Depth != nil {
		cfg.Export.Depth = e.Depth
	}
	if e.HTML != nil {
		cfg.Export.HTML = *e.HTML
	}
	if e.Verify {
		cfg.Export.Verify = true
	}
	if e.Repo != "" {
		cfg.Repo.URL = e.Repo
	}
	if e.Branch != "" {
		cfg.Repo.Branch = e.Branch
	}
}

// ExportResult summarizes one finished export run.
type ExportResult struct {
	Root       string
	OutputRoot string
	Depth      export.Depth
	Report     export.Report
	Duration   time.Duration
}

// RunExport performs one full export of rootPath per cfg: dry-run count,
// traversal, tree view, index page, report, then the optional journal entry,
// notification and verification.
func RunExport(ctx context.Context, cfg *config.Config, rootPath string) (*ExportResult, error) {
	start := time.Now()
	depth := export.FromConfig(cfg.Export.Depth)

	expected, _ := export.CountReachable(rootPath, depth)
	slog.Info("Starting export",
		logfields.Root(rootPath),
		logfields.Depth(depth.String()),
		logfields.Expected(expected))

	outputRoot := ExportRootFor(cfg.Export.BaseDir, rootPath)
	if err := os.MkdirAll(outputRoot, 0o750); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	exporter := export.New(outputRoot)
	if err := exporter.Export(rootPath, depth, cfg.Export.HTML); err != nil {
		return nil, err
	}

	if err := export.WriteTreeView(exporter.Registry, filepath.Dir(rootPath), outputRoot); err != nil {
		return nil, fmt.Errorf("write tree view: %w", err)
	}
	if cfg.Export.HTML {
		if err := export.WriteIndex(outputRoot, filepath.Base(rootPath)); err != nil {
			return nil, fmt.Errorf("write index: %w", err)
		}
	}

	report := export.BuildReport(exporter.Registry, expected)
	duration := time.Since(start)
	logReport(report, duration)

	result := &ExportResult{
		Root:       rootPath,
		OutputRoot: outputRoot,
		Depth:      depth,
		Report:     report,
		Duration:   duration,
	}

	appendHistory(ctx, cfg, result)
	publishEvent(cfg, result)

	if cfg.Export.Verify {
		if err := verifyExport(outputRoot); err != nil {
			return result, err
		}
	}
	return result, nil
}

func logReport(r export.Report, d time.Duration) {
	if r.Matches() {
		slog.Info("Export complete",
			logfields.Copied(r.Copied),
			slog.Int("documents", r.Documents),
			slog.Int("images", r.Images),
			slog.Int("other", r.Other),
			logfields.DurationMS(float64(d.Milliseconds())))
		return
	}
	slog.Warn("Export finished with a count discrepancy",
		logfields.Expected(r.Expected),
		logfields.Copied(r.Copied),
		logfields.DurationMS(float64(d.Milliseconds())))
}

// appendHistory journals the run; a broken journal never fails the export.
func appendHistory(ctx context.Context, cfg *config.Config, res *ExportResult) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("History journal unavailable", logfields.Error(err))
		return
	}
	defer func() { warnOnCleanupError("history store", store.Close()) }()

	_, err = store.Append(ctx, history.Run{
		Root:      res.Root,
		Depth:     res.Depth.String(),
		HTML:      cfg.Export.HTML,
		Expected:  res.Report.Expected,
		Copied:    res.Report.Copied,
		Duration:  res.Duration,
		StartedAt: time.Now().Add(-res.Duration),
	})
	if err != nil {
		slog.Warn("Failed to journal export run", logfields.Error(err))
	}
}

// publishEvent notifies listeners when a NATS URL is configured. Failures are
// logged, never fatal.
func publishEvent(cfg *config.Config, res *ExportResult) {
	if cfg.Notify.URL == "" {
		return
	}
	pub, err := notify.NewPublisher(cfg.Notify.URL, cfg.Notify.Subject)
	if err != nil {
		slog.Warn("Export notification unavailable", logfields.Error(err))
		return
	}
	defer pub.Close()

	err = pub.Publish(notify.ExportEvent{
		Root:       res.Root,
		OutputDir:  res.OutputRoot,
		Depth:      res.Depth.String(),
		Expected:   res.Report.Expected,
		Copied:     res.Report.Copied,
		HTML:       cfg.Export.HTML,
		DurationMS: res.Duration.Milliseconds(),
		FinishedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("Failed to publish export event", logfields.Error(err))
	}
}

func verifyExport(outputRoot string) error {
	problems, err := linkcheck.VerifyDir(outputRoot)
	if err != nil {
		return fmt.Errorf("verify export: %w", err)
	}
	for _, p := range problems {
		slog.Warn("Dangling reference", slog.String("problem", p.String()))
	}
	if len(problems) > 0 {
		return fmt.Errorf("verification found %d dangling reference(s)", len(problems))
	}
	slog.Info("Verification passed")
	return nil
}

// DisplayName strips the document suffix for user-facing output.
func DisplayName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), wikilink.DocSuffix)
}
