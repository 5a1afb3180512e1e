package git

import (
	"context"
	"fmt"
)

// StageAll stages all changes including untracked files and deletions
func (r *CommandRunner) StageAll(ctx context.Context) error {
	if err := r.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}
