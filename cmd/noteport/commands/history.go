package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/noteport/internal/history"
)

// HistoryCmd implements the 'history' command: list recent export runs from
// the journal.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of runs to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in %s", root.Config)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history journal: %w", err)
	}
	defer func() { warnOnCleanupError("history store", store.Close()) }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No export runs recorded")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if r.Expected != r.Copied {
			status = fmt.Sprintf("expected %d", r.Expected)
		}
		fmt.Printf("%s  %-40s depth=%-9s copied=%-4d %-12s %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			DisplayName(r.Root), r.Depth, r.Copied, status, r.Duration.Truncate(time.Millisecond))
	}
	return nil
}
