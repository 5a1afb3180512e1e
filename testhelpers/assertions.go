// Package testhelpers provides testing utilities for repo-uploader,
// including Git repository helpers, custom assertions and the shared test binary.
package testhelpers

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	uploadgit "repouploader.dev/repouploader/internal/git"
)

// ExpectCommits asserts the newest commit subjects reachable from rev in the
// repository at dir, newest first. dir may be a bare repository.
func ExpectCommits(t *testing.T, dir, rev string, expected []string) {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err, "Failed to open repository")

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	require.NoError(t, err, "Failed to resolve %s", rev)

	iter, err := repo.Log(&git.LogOptions{From: *hash})
	require.NoError(t, err, "Failed to list commits")
	defer iter.Close()

	actual := []string{}
	for len(actual) < len(expected) {
		commit, err := iter.Next()
		if err != nil {
			break
		}
		actual = append(actual, strings.SplitN(strings.TrimSpace(commit.Message), "\n", 2)[0])
	}

	require.Equal(t, expected, actual, "Commits do not match")
}

// ExpectRemotes asserts the sorted remote names of the repository at dir.
func ExpectRemotes(t *testing.T, dir string, expected []string) {
	t.Helper()

	repo, err := uploadgit.OpenRepository(dir)
	require.NoError(t, err, "Failed to open repository")

	actual, err := repo.RemoteNames()
	require.NoError(t, err, "Failed to list remotes")

	sort.Strings(expected)
	require.Equal(t, expected, actual, "Remotes do not match")
}

// ExpectFileAtRevision asserts the contents of path in the tree of rev.
func ExpectFileAtRevision(t *testing.T, dir, rev, path, contents string) {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err, "Failed to open repository")

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	require.NoError(t, err, "Failed to resolve %s", rev)

	commit, err := repo.CommitObject(*hash)
	require.NoError(t, err)

	file, err := commit.File(filepath.ToSlash(path))
	require.NoError(t, err, "File %s not in %s", path, rev)

	actual, err := file.Contents()
	require.NoError(t, err)
	require.Equal(t, contents, actual)
}

// ExpectTree asserts the files in dir and their contents, ignoring .git.
func ExpectTree(t *testing.T, dir string, expected map[string]string) {
	t.Helper()

	actual := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		actual[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

// CommitCount returns the number of commits reachable from HEAD in dir.
func CommitCount(t *testing.T, dir string) int {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	if err != nil {
		return 0
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	require.NoError(t, err)
	count := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	}))
	return count
}
