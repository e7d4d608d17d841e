package commands

import (
	"fmt"

	"git.home.luguber.info/inful/noteport/internal/export"
)

// CountCmd implements the 'count' command: the dry run of an export.
type CountCmd struct {
	File  string `arg:"" help:"Root document: a path or a bare note name (.md optional)"`
	Depth *int   `short:"d" help:"Maximum document-link traversal depth (omit for unbounded)"`
}

func (c *CountCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if c.Depth != nil {
		cfg.Export.Depth = c.Depth
	}

	rootPath, cleanup, err := ResolveVault(cfg, c.File)
	if err != nil {
		return err
	}
	defer cleanup()

	depth := export.FromConfig(cfg.Export.Depth)
	count, _ := export.CountReachable(rootPath, depth)
	fmt.Printf("%s reaches %d file(s) at depth %s\n", DisplayName(rootPath), count, depth)
	return nil
}
