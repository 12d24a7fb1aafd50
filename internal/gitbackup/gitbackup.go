// Package gitbackup keeps a git history of the snapshot file. After each
// successful write-through the snapshot is copied into a local repository and
// committed, so every review session leaves a recoverable trail.
package gitbackup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/storage"
)

// Backup commits snapshot files into a local git repository.
type Backup struct {
	repo    *git.Repository
	repoDir string
}

// Open opens the repository at repoDir, initializing a fresh one if the
// directory is not a repository yet.
func Open(repoDir string) (*Backup, error) {
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", repoDir, err)
	}
	repo, err := git.PlainOpen(repoDir)
	if err == git.ErrRepositoryNotExists {
		repo, err = git.PlainInit(repoDir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open backup repo at %s: %w", repoDir, err)
	}
	return &Backup{repo: repo, repoDir: repoDir}, nil
}

// Commit copies the snapshot at path into the repository and commits it.
// An unchanged snapshot is a no-op.
func (b *Backup) Commit(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	name := filepath.Base(path)
	if err := os.WriteFile(filepath.Join(b.repoDir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to copy snapshot into backup repo: %w", err)
	}

	worktree, err := b.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get backup worktree: %w", err)
	}
	if _, err := worktree.Add(name); err != nil {
		return fmt.Errorf("failed to stage snapshot %s: %w", name, err)
	}
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get backup status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	_, err = worktree.Commit(fmt.Sprintf("snapshot %s", time.Now().Format(time.RFC3339)), &git.CommitOptions{
		Author: &object.Signature{
			Name:  "grindstone",
			Email: "grindstone@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Adapter wraps a storage adapter so every successful SaveAll is followed by
// a backup commit. Backup failures are logged, not propagated: losing a
// history entry must not fail the triggering operation.
func (b *Backup) Adapter(inner storage.Adapter, snapshotPath string) storage.Adapter {
	return &backupAdapter{inner: inner, backup: b, snapshotPath: snapshotPath}
}

type backupAdapter struct {
	inner        storage.Adapter
	backup       *Backup
	snapshotPath string
}

func (a *backupAdapter) LoadAll() ([]domain.Question, error) {
	return a.inner.LoadAll()
}

func (a *backupAdapter) SaveAll(questions []domain.Question) error {
	if err := a.inner.SaveAll(questions); err != nil {
		return err
	}
	if err := a.backup.Commit(a.snapshotPath); err != nil {
		slog.Warn("snapshot backup failed", "path", a.snapshotPath, "error", err)
	}
	return nil
}
