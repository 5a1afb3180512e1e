// Package git provides low-level Git operations for repo-uploader.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Staging and committing the working copy
//   - Pushing a branch, optionally through a temporary authenticated remote
//   - Read-only repository inspection through go-git
//
// This package should be the only place where git commands are executed.
// Commands are always argument vectors, never shell strings, so commit
// messages, tokens and URLs cannot be interpreted by a shell.
package git
