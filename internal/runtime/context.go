package runtime

import (
	"context"

	"repouploader.dev/repouploader/internal/git"
	"repouploader.dev/repouploader/internal/output"
)

// Context provides access to the git runner and output for actions
type Context struct {
	context.Context

	Splog *output.Splog
	Git   git.Runner
}

// NewContext creates a new context running git in repoRoot
func NewContext(ctx context.Context, splog *output.Splog, repoRoot string, opts ...git.RunnerOption) *Context {
	if splog == nil {
		splog = output.NewSplog()
	}
	opts = append([]git.RunnerOption{git.WithSplog(splog)}, opts...)
	return &Context{
		Context: ctx,
		Splog:   splog,
		Git:     git.NewCommandRunner(repoRoot, opts...),
	}
}

// NewContextWithRunner creates a context around an existing git runner
func NewContextWithRunner(ctx context.Context, splog *output.Splog, runner git.Runner) *Context {
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Context: ctx,
		Splog:   splog,
		Git:     runner,
	}
}
