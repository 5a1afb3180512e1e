package git

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/output"
)

// DefaultBinary is the git executable looked up on PATH
const DefaultBinary = "git"

// redactedPlaceholder replaces secrets in echoed command lines
const redactedPlaceholder = "***"

// CommandRunner executes git commands synchronously in a working directory.
// Child output is passed through to the configured streams, not captured.
type CommandRunner struct {
	workingDir string
	binary     string
	env        []string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	splog      *output.Splog
	secrets    []string
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithBinary overrides the git executable
func WithBinary(binary string) RunnerOption {
	return func(r *CommandRunner) {
		r.binary = binary
	}
}

// WithEnv appends environment variables to the child process environment
func WithEnv(env ...string) RunnerOption {
	return func(r *CommandRunner) {
		r.env = append(r.env, env...)
	}
}

// WithOutput sets the streams the child process writes to
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *CommandRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithSplog sets the logger used to echo commands
func WithSplog(splog *output.Splog) RunnerOption {
	return func(r *CommandRunner) {
		r.splog = splog
	}
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		workingDir: workingDir,
		binary:     DefaultBinary,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.splog == nil {
		r.splog = output.NewSplog()
	}
	return r
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// AddSecret registers a value that must never appear in echoed command lines.
// An argument equal to a secret, or carrying it as URL userinfo, is masked as a whole.
func (r *CommandRunner) AddSecret(secret string) {
	if secret == "" {
		return
	}
	r.secrets = append(r.secrets, secret)
}

// redactArg masks arg when it is or embeds a registered secret
func (r *CommandRunner) redactArg(arg string) string {
	for _, secret := range r.secrets {
		if arg == secret || strings.Contains(arg, secret+"@") {
			return redactedPlaceholder
		}
	}
	return arg
}

// CommandLine renders the command for display with secrets redacted
func (r *CommandRunner) CommandLine(args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, r.binary)
	for _, arg := range r.redactArgs(args) {
		if strings.ContainsAny(arg, " \t\n\"'") {
			arg = `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Run executes a git command with the given arguments and waits for it to finish.
// A process that cannot be started yields a CommandSpawnError, a non-zero exit a GitCommandError.
func (r *CommandRunner) Run(ctx context.Context, args ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.splog.Command(r.CommandLine(args...))

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Start(); err != nil {
		return uploaderrors.NewCommandSpawnError(r.binary, r.redactArgs(args), err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return uploaderrors.NewGitCommandError(r.binary, r.redactArgs(args), exitErr.ExitCode(), err)
		}
		return uploaderrors.NewCommandSpawnError(r.binary, r.redactArgs(args), err)
	}
	return nil
}

func (r *CommandRunner) redactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		redacted[i] = r.redactArg(arg)
	}
	return redacted
}

// ExitStatus returns the process status carried by an error from Run:
// 0 for nil, the exit code for a non-zero exit and -1 when the process never ran.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *uploaderrors.GitCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

// Runner defines the git operations used by the upload actions.
// This allows actions to be used with both real git and mock implementations.
type Runner interface {
	// Working copy
	WorkingDir() string
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error

	// Remotes
	Push(ctx context.Context, remote, branchName string) error
	AddRemote(ctx context.Context, name, url string) error
	RemoveRemote(ctx context.Context, name string) error
	HasRemote(ctx context.Context, name string) (bool, error)

	// AddSecret registers a value to redact from echoed commands
	AddSecret(secret string)
}

var _ Runner = (*CommandRunner)(nil)
