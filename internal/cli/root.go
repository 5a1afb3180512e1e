// Package cli implements the repo-uploader command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repouploader.dev/repouploader/internal/actions"
	"repouploader.dev/repouploader/internal/config"
	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/git"
	"repouploader.dev/repouploader/internal/output"
	"repouploader.dev/repouploader/internal/runtime"
)

const usageLine = "repo-uploader <source_path> <repo_path> <commit_message> [--push] [--git-token TOKEN] [--remote-url URL] [--branch NAME]"

// BuildInfo describes the running binary
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// reportedError marks an error that has already been logged
type reportedError struct {
	error
}

func (e *reportedError) Unwrap() error {
	return e.error
}

// rootFlags holds the parsed command line flags
type rootFlags struct {
	push      bool
	token     string
	remoteURL string
	branch    string
	remote    string
	exclude   []string
	logFile   string
	verbose   bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(info BuildInfo) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Copies files from source_path into repo_path, stages, commits and optionally pushes",
		Long: `Copies files from source_path into repo_path, stages, commits and optionally pushes.

With --push, the branch is pushed to the repository's default remote. When both
--git-token and --remote-url are given, the push goes through a temporary remote
whose URL carries the token; the remote is removed again afterwards.

The token may also be supplied through the ` + config.EnvGitToken + ` environment variable.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, f, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return uploaderrors.NewArgumentError("%v", err)
	})

	cmd.Flags().BoolVar(&f.push, "push", false, "Push the branch after committing")
	cmd.Flags().StringVar(&f.token, "git-token", "", "Token embedded in --remote-url for the push")
	cmd.Flags().StringVar(&f.remoteURL, "remote-url", "", "Remote URL to push to through a temporary remote (requires a token)")
	cmd.Flags().StringVar(&f.branch, "branch", config.DefaultBranch, "Branch to push")
	cmd.Flags().StringVar(&f.remote, "remote", config.DefaultRemote, "Remote to push to when no token and remote URL are given")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "Skip source entries whose name matches this glob (repeatable)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Also write a log to this file (env "+config.EnvLogFile+")")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print debug output")

	return cmd
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 3 {
		return uploaderrors.NewArgumentError("expected 3 arguments <source_path> <repo_path> <commit_message>, got %d", len(args))
	}
	return nil
}

func runUpload(cmd *cobra.Command, f *rootFlags, args []string) error {
	source, err := filepath.Abs(args[0])
	if err != nil {
		return uploaderrors.NewArgumentError("invalid source path %q: %v", args[0], err)
	}
	repoPath, err := filepath.Abs(args[1])
	if err != nil {
		return uploaderrors.NewArgumentError("invalid repo path %q: %v", args[1], err)
	}
	message := args[2]

	overrides := config.Overrides{
		RemoteURL: f.remoteURL,
		Token:     f.token,
		LogFile:   f.logFile,
		Exclude:   f.exclude,
	}
	if cmd.Flags().Changed("branch") {
		overrides.Branch = f.branch
	}
	if cmd.Flags().Changed("remote") {
		overrides.Remote = f.remote
	}
	settings, err := config.Resolve(repoPath, overrides, nil)
	if err != nil {
		return err
	}

	splog, err := output.NewSplogWithOptions(output.Options{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		LogFile: settings.LogFile,
		Debug:   f.verbose || os.Getenv("DEBUG") != "",
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	ctx := runtime.NewContext(cmd.Context(), splog, repoPath,
		git.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	err = actions.UploadAction(ctx, actions.UploadOptions{
		Source:   source,
		RepoPath: repoPath,
		Message:  message,
		Exclude:  settings.Exclude,
		Push:     f.push,
		PushOptions: actions.PushOptions{
			Branch:    settings.Branch,
			Remote:    settings.Remote,
			RemoteURL: settings.RemoteURL,
			Token:     settings.Token,
		},
	})
	if err != nil {
		splog.Error("%s", describe(err))
		return &reportedError{err}
	}

	splog.Success("Done.")
	return nil
}

// describe renders err the way it is reported to the user
func describe(err error) string {
	var pathErr *uploaderrors.PathNotFoundError
	switch {
	case errors.As(err, &pathErr):
		if pathErr.Kind == uploaderrors.PathKindRepository {
			return fmt.Sprintf("Repo path does not exist: %s", pathErr.Path)
		}
		return fmt.Sprintf("Source path does not exist: %s", pathErr.Path)
	case errors.Is(err, uploaderrors.ErrCopyFailed):
		return fmt.Sprintf("Copy failed: %v", err)
	case errors.Is(err, uploaderrors.ErrPushFailed):
		return fmt.Sprintf("git push failed or returned non-zero: %d", git.ExitStatus(err))
	default:
		return err.Error()
	}
}

// Execute runs the command line args and returns the process exit code
func Execute(ctx context.Context, args []string, info BuildInfo, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(info)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return uploaderrors.ExitOK
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, uploaderrors.ErrInvalidArguments) {
			_, _ = fmt.Fprintf(stdout, "Usage: %s\n", usageLine)
			_, _ = fmt.Fprintln(stdout, "Copies files from source_path into repo_path, stages, commits and optionally pushes.")
			_, _ = fmt.Fprintln(stdout, "Run 'repo-uploader --help' for all flags.")
		}
	}
	return uploaderrors.ExitCode(err)
}
