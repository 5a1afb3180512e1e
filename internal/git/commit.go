package git

import (
	"context"
	"fmt"
)

// Commit records the staged changes with the given message.
// git exits non-zero when there is nothing to commit.
func (r *CommandRunner) Commit(ctx context.Context, message string) error {
	if err := r.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
