package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// isolatedEnv keeps the user's global git config out of test repositories
var isolatedEnv = []string{"GIT_CONFIG_GLOBAL=/dev/null", "GIT_TERMINAL_PROMPT=0"}

// GitEnv returns the environment git child processes run with in tests
func GitEnv() []string {
	return append([]string(nil), isolatedEnv...)
}

// GitRepo represents a Git working copy for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), isolatedEnv...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w, output: %s", err, string(output))
	}

	repo := &GitRepo{Dir: dir}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "commit.gpgsign", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), isolatedEnv...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, string(output))
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), isolatedEnv...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes contents to a path relative to the working copy, creating parents.
func (r *GitRepo) WriteFile(name, contents string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CreateChangeAndCommit writes name and commits it with message.
func (r *GitRepo) CreateChangeAndCommit(name, contents, message string) error {
	if err := r.WriteFile(name, contents); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", "."); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}

// CreateBareRemote creates a bare git repository to act as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir, err := NewBareRepo(r.Dir + "-" + name + ".git")
	if err != nil {
		return "", err
	}
	if err := r.RunGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// NewBareRepo creates a bare repository at dir without registering it anywhere.
func NewBareRepo(dir string) (string, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "init", "--bare", dir)
	cmd.Env = append(os.Environ(), isolatedEnv...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w, output: %s", err, string(output))
	}
	return dir, nil
}

// Remotes returns the configured remote names.
func (r *GitRepo) Remotes() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("remote")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// TrackedFiles returns the paths recorded in HEAD.
func (r *GitRepo) TrackedFiles() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("ls-tree", "-r", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0750)
}
