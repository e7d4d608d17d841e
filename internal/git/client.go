// Package git clones remote vaults for export.
package git

import (
	"fmt"
	"log/slog"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/noteport/internal/logfields"
)

// Client handles git operations against one workspace directory.
type Client struct {
	workspaceDir string
}

// NewClient creates a client cloning into workspaceDir.
func NewClient(workspaceDir string) *Client {
	return &Client{workspaceDir: workspaceDir}
}

// CloneVault clones url into the workspace and returns the checkout path.
// An empty branch clones the remote default.
func (c *Client) CloneVault(url, branch string) (string, error) {
	dest := filepath.Join(c.workspaceDir, "vault")

	opts := &gogit.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + branch)
		opts.SingleBranch = true
	}

	slog.Info("Cloning vault repository", logfields.URL(url), logfields.Path(dest))
	repo, err := gogit.PlainClone(dest, false, opts)
	if err != nil {
		return "", fmt.Errorf("clone vault %s: %w", url, err)
	}

	if ref, headErr := repo.Head(); headErr == nil {
		slog.Info("Vault cloned", logfields.URL(url), slog.String("commit", ref.Hash().String()[:8]))
	}
	return dest, nil
}
