package git

import (
	"context"
	"fmt"
)

// AddRemote registers a remote named name pointing at url
func (r *CommandRunner) AddRemote(ctx context.Context, name, url string) error {
	if err := r.Run(ctx, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote removes the remote named name along with its tracking refs and config
func (r *CommandRunner) RemoveRemote(ctx context.Context, name string) error {
	if err := r.Run(ctx, "remote", "remove", name); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}
	return nil
}

// HasRemote reports whether the working copy has a remote named name.
// The repository config is re-read on every call since git mutates it.
func (r *CommandRunner) HasRemote(_ context.Context, name string) (bool, error) {
	repo, err := OpenRepository(r.workingDir)
	if err != nil {
		return false, err
	}
	return repo.HasRemote(name)
}
