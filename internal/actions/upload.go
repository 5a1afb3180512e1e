package actions

import (
	"errors"
	"os"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/filecopy"
	"repouploader.dev/repouploader/internal/git"
	"repouploader.dev/repouploader/internal/runtime"
)

// UploadOptions contains the invocation parameters of one upload
type UploadOptions struct {
	Source   string
	RepoPath string
	Message  string
	Exclude  []string
	Push     bool
	PushOptions
}

// UploadAction copies opts.Source into opts.RepoPath, stages and commits
// everything, then pushes when requested.
func UploadAction(ctx *runtime.Context, opts UploadOptions) error {
	splog := ctx.Splog

	if _, err := os.Stat(opts.RepoPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return uploaderrors.NewPathNotFoundError(uploaderrors.PathKindRepository, opts.RepoPath)
		}
		return err
	}
	if opts.Push {
		if err := validatePushOptions(opts.PushOptions); err != nil {
			return err
		}
	}
	if !git.IsRepository(opts.RepoPath) {
		splog.Warn("%s is not a git working copy; git commands are likely to fail", opts.RepoPath)
	}

	copier, err := filecopy.New(
		filecopy.WithExcludes(opts.Exclude...),
		filecopy.WithSplog(splog),
	)
	if err != nil {
		return uploaderrors.NewArgumentError("%v", err)
	}
	if err := copier.CopyInto(opts.Source, opts.RepoPath); err != nil {
		return err
	}
	stats := copier.Stats()
	splog.Info("Copied %d files (%d bytes) from %s into %s", stats.Files, stats.Bytes, opts.Source, opts.RepoPath)
	if stats.Skipped > 0 {
		splog.Debug("Skipped %d entries", stats.Skipped)
	}

	// Failures here are not fatal: the commit may have nothing to record
	if err := ctx.Git.StageAll(ctx); err != nil {
		splog.Warn("git add failed or returned non-zero: %d", git.ExitStatus(err))
		splog.Debug("%v", err)
	}
	if err := ctx.Git.Commit(ctx, opts.Message); err != nil {
		splog.Warn("git commit failed or returned non-zero: %d", git.ExitStatus(err))
		splog.Debug("%v", err)
	}

	if !opts.Push {
		return nil
	}
	return PushAction(ctx, opts.PushOptions)
}
