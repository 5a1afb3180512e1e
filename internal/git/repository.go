package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// Repository wraps a go-git repository for read-only inspection.
// Mutations always go through the git binary.
type Repository struct {
	*git.Repository
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{Repository: repo}, nil
}

// IsRepository reports whether path is inside a git working copy
func IsRepository(path string) bool {
	_, err := OpenRepository(path)
	return err == nil
}

// HasRemote reports whether a remote with the given name is configured
func (r *Repository) HasRemote(name string) (bool, error) {
	_, err := r.Remote(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, git.ErrRemoteNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to read remote %s: %w", name, err)
}

// RemoteNames returns the configured remote names in sorted order
func (r *Repository) RemoteNames() ([]string, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// GetCurrentBranch returns the current branch name
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}

	return head.Name().Short(), nil
}
