package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scene is a temporary working copy for one test.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// NewScene creates a fresh repository under t.TempDir() and runs setup in it.
func NewScene(t *testing.T, setup func(*Scene) error) *Scene {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := NewGitRepo(dir)
	require.NoError(t, err, "failed to create git repo")

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		require.NoError(t, setup(scene), "scene setup failed")
	}
	return scene
}

// NewSourceTree writes files (slash-separated relative path to contents) into
// a fresh directory and returns its path.
func NewSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "source")
	source := &GitRepo{Dir: dir}
	for name, contents := range files {
		require.NoError(t, source.WriteFile(filepath.FromSlash(name), contents))
	}
	require.NoError(t, ensureDir(dir))
	return dir
}
