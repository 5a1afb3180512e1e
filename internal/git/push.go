package git

import (
	"context"
	"fmt"
)

// DefaultRemote is the remote pushed to when no authenticated URL is given
const DefaultRemote = "origin"

// DefaultBranch is the branch pushed when none is configured
const DefaultBranch = "main"

// Push pushes branchName to remote. No upstream is recorded so a temporary
// remote leaves no branch configuration behind.
func (r *CommandRunner) Push(ctx context.Context, remote, branchName string) error {
	if err := r.Run(ctx, "push", remote, branchName); err != nil {
		return fmt.Errorf("failed to push branch %s to %s: %w", branchName, remote, err)
	}
	return nil
}
