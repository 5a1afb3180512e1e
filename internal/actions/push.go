package actions

import (
	"context"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/git"
	"repouploader.dev/repouploader/internal/runtime"
)

// PushOptions contains options for pushing the committed branch
type PushOptions struct {
	// Branch is pushed by name (default "main")
	Branch string

	// Remote is the already-configured remote used without a token (default "origin")
	Remote string

	// RemoteURL and Token together select an authenticated temporary remote
	RemoteURL string
	Token     string
}

// PushAction pushes opts.Branch. With both a token and a remote URL the push
// goes through a temporary remote embedding the token, which is removed again
// whether or not the push succeeds.
func PushAction(ctx *runtime.Context, opts PushOptions) error {
	splog := ctx.Splog

	branch := opts.Branch
	if branch == "" {
		branch = git.DefaultBranch
	}
	remote := opts.Remote
	if remote == "" {
		remote = git.DefaultRemote
	}

	if err := validatePushOptions(PushOptions{Branch: branch, Remote: remote, RemoteURL: opts.RemoteURL, Token: opts.Token}); err != nil {
		return err
	}
	warnIfNotCheckedOut(ctx, branch)

	git.AddTokenSecrets(ctx.Git, opts.Token)

	if opts.Token == "" || opts.RemoteURL == "" {
		if opts.Token != "" {
			splog.Warn("--git-token given without --remote-url; pushing through %s", remote)
		}
		if opts.RemoteURL != "" {
			splog.Warn("--remote-url given without --git-token; pushing through %s", remote)
		}
		if err := ctx.Git.Push(ctx, remote, branch); err != nil {
			return uploaderrors.NewPushError(remote, branch, err)
		}
		return nil
	}

	authURL := git.AuthenticatedURL(opts.RemoteURL, opts.Token)
	tmp, err := git.RegisterTemporaryRemote(ctx, ctx.Git, git.TemporaryRemoteName, authURL)
	if err != nil {
		return uploaderrors.NewPushError(git.TemporaryRemoteName, branch, err)
	}
	defer func() {
		// Runs on every exit path, including cancellation
		if err := tmp.Release(context.WithoutCancel(ctx)); err != nil {
			splog.Error("Failed to remove temporary remote %s; remove it with 'git remote remove %s': %v", tmp.Name, tmp.Name, err)
		}
	}()

	if err := tmp.Push(ctx, branch); err != nil {
		return uploaderrors.NewPushError(tmp.Name, branch, err)
	}
	return nil
}

// warnIfNotCheckedOut reports a push of a branch other than the one the
// commit was just recorded on
func warnIfNotCheckedOut(ctx *runtime.Context, branch string) {
	repo, err := git.OpenRepository(ctx.Git.WorkingDir())
	if err != nil {
		return
	}
	current, err := repo.GetCurrentBranch()
	if err != nil || current == branch {
		return
	}
	ctx.Splog.Warn("Pushing %s but %s is checked out; the new commit is on %s", branch, current, current)
}
