package actions_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"repouploader.dev/repouploader/internal/git"
	"repouploader.dev/repouploader/internal/output"
	"repouploader.dev/repouploader/internal/runtime"
	"repouploader.dev/repouploader/testhelpers"
)

// logs captures what an action printed
type logs struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newSplog(t *testing.T, l *logs) *output.Splog {
	t.Helper()
	splog, err := output.NewSplogWithOptions(output.Options{Stdout: &l.stdout, Stderr: &l.stderr})
	require.NoError(t, err)
	return splog
}

// newRepoContext runs real git in dir with output discarded
func newRepoContext(t *testing.T, dir string) (*runtime.Context, *logs) {
	t.Helper()
	l := &logs{}
	ctx := runtime.NewContext(context.Background(), newSplog(t, l), dir,
		git.WithEnv(testhelpers.GitEnv()...),
		git.WithOutput(io.Discard, io.Discard),
	)
	return ctx, l
}

// newFakeContext runs actions against a fakeRunner
func newFakeContext(t *testing.T, ctx context.Context, runner *fakeRunner) (*runtime.Context, *logs) {
	t.Helper()
	l := &logs{}
	return runtime.NewContextWithRunner(ctx, newSplog(t, l), runner), l
}

// fakeRunner records git operations and fails on request
type fakeRunner struct {
	dir       string
	calls     []string
	remotes   map[string]bool
	secrets   []string
	addErr    error
	commitErr error
	pushErr   error
	removeErr error
	onPush    func()
}

func newFakeRunner(dir string) *fakeRunner {
	return &fakeRunner{dir: dir, remotes: map[string]bool{"origin": true}}
}

func (f *fakeRunner) WorkingDir() string { return f.dir }

func (f *fakeRunner) StageAll(context.Context) error {
	f.calls = append(f.calls, "add -A")
	return f.addErr
}

func (f *fakeRunner) Commit(_ context.Context, message string) error {
	f.calls = append(f.calls, "commit -m "+message)
	return f.commitErr
}

func (f *fakeRunner) Push(_ context.Context, remote, branch string) error {
	f.calls = append(f.calls, "push "+remote+" "+branch)
	if f.onPush != nil {
		f.onPush()
	}
	return f.pushErr
}

func (f *fakeRunner) AddRemote(_ context.Context, name, _ string) error {
	f.calls = append(f.calls, "remote add "+name)
	f.remotes[name] = true
	return nil
}

func (f *fakeRunner) RemoveRemote(ctx context.Context, name string) error {
	f.calls = append(f.calls, "remote remove "+name)
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.remotes, name)
	return nil
}

func (f *fakeRunner) HasRemote(_ context.Context, name string) (bool, error) {
	return f.remotes[name], nil
}

func (f *fakeRunner) AddSecret(secret string) {
	f.secrets = append(f.secrets, secret)
}
