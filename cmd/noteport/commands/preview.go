package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/noteport/internal/preview"
)

// PreviewCmd implements the 'preview' command: export once, serve the result,
// re-export whenever the vault changes.
type PreviewCmd struct {
	File string `arg:"" help:"Root document: a path or a bare note name (.md optional)"`
	Port int    `short:"p" help:"HTTP port (overrides config)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if p.Port != 0 {
		cfg.Preview.Port = p.Port
	}
	// The preview always renders HTML; serving bare markdown is pointless.
	cfg.Export.HTML = true

	rootPath, cleanup, err := ResolveVault(cfg, p.File)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &preview.Server{
		VaultDir:        filepath.Dir(rootPath),
		ExportDir:       ExportRootFor(cfg.Export.BaseDir, rootPath),
		Port:            cfg.Preview.Port,
		RebuildInterval: cfg.Preview.RebuildInterval,
		Rebuild: func(ctx context.Context) error {
			_, err := RunExport(ctx, cfg, rootPath)
			return err
		},
	}
	return server.Run(ctx)
}
