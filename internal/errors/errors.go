// Package errors provides sentinel errors and custom error types for repo-uploader.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrInvalidArguments indicates that the command line could not be used
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrPathNotFound indicates that a source or repository path does not exist
	ErrPathNotFound = errors.New("path not found")

	// ErrCopyFailed indicates that copying the source tree failed
	ErrCopyFailed = errors.New("copy failed")

	// ErrCommandSpawn indicates that a child process could not be started
	ErrCommandSpawn = errors.New("command could not be started")

	// ErrCommandFailed indicates that a child process exited with a non-zero status
	ErrCommandFailed = errors.New("command exited with non-zero status")

	// ErrPushFailed indicates that pushing to the remote failed
	ErrPushFailed = errors.New("push failed")
)

// Process exit codes
const (
	ExitOK           = 0
	ExitBadArguments = 1
	ExitRepoNotFound = 2
	ExitCopyFailed   = 3
	ExitPushFailed   = 5
)

// ArgumentError represents an unusable command line
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrInvalidArguments
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// NewArgumentError creates a new ArgumentError
func NewArgumentError(format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}

// PathKind names the role of a path in an upload
type PathKind string

const (
	// PathKindSource is the tree being copied
	PathKindSource PathKind = "source"
	// PathKindRepository is the target working copy
	PathKindRepository PathKind = "repo"
)

// PathNotFoundError represents a missing source or repository path
type PathNotFoundError struct {
	Kind PathKind
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s path does not exist: %s", e.Kind, e.Path)
}

// Is returns true if the target error is ErrPathNotFound or os.ErrNotExist
func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound || target == os.ErrNotExist
}

// NewPathNotFoundError creates a new PathNotFoundError
func NewPathNotFoundError(kind PathKind, path string) *PathNotFoundError {
	return &PathNotFoundError{Kind: kind, Path: path}
}

// CopyError represents an I/O failure while mirroring the source tree
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy failed at %s: %v", e.Path, e.Err)
}

// Is returns true if the target error is ErrCopyFailed
func (e *CopyError) Is(target error) bool {
	return target == ErrCopyFailed
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// NewCopyError creates a new CopyError
func NewCopyError(path string, err error) *CopyError {
	return &CopyError{Path: path, Err: err}
}

// CommandSpawnError represents a child process that could not be started
type CommandSpawnError struct {
	Command string
	Args    []string
	Err     error
}

func (e *CommandSpawnError) Error() string {
	return fmt.Sprintf("failed to run command: %s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
}

// Is returns true if the target error is ErrCommandSpawn
func (e *CommandSpawnError) Is(target error) bool {
	return target == ErrCommandSpawn
}

func (e *CommandSpawnError) Unwrap() error {
	return e.Err
}

// NewCommandSpawnError creates a new CommandSpawnError
func NewCommandSpawnError(command string, args []string, err error) *CommandSpawnError {
	return &CommandSpawnError{Command: command, Args: args, Err: err}
}

// GitCommandError represents a git command that ran and exited with a non-zero status.
// Output is passed through to the terminal, so none is captured here.
type GitCommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	return msg
}

// Is returns true if the target error is ErrCommandFailed
func (e *GitCommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Err:      err,
	}
}

// PushError represents a failed push of a branch
type PushError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("git push of %s to %s failed: %v", e.Branch, e.Remote, e.Err)
}

// Is returns true if the target error is ErrPushFailed
func (e *PushError) Is(target error) bool {
	return target == ErrPushFailed
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// NewPushError creates a new PushError
func NewPushError(remote, branch string, err error) *PushError {
	return &PushError{Remote: remote, Branch: branch, Err: err}
}

// ExitCode maps an error returned by an upload to the process exit status.
// Errors outside the known kinds (unreadable paths, config or log setup
// failures) share the invocation-error status 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var pathErr *PathNotFoundError
	switch {
	case errors.Is(err, ErrInvalidArguments):
		return ExitBadArguments
	case errors.As(err, &pathErr):
		if pathErr.Kind == PathKindRepository {
			return ExitRepoNotFound
		}
		return ExitCopyFailed
	case errors.Is(err, ErrCopyFailed):
		return ExitCopyFailed
	case errors.Is(err, ErrPushFailed):
		return ExitPushFailed
	default:
		return ExitBadArguments
	}
}
