package filecopy

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/output"
	"repouploader.dev/repouploader/testhelpers"
)

func quietSplog(t *testing.T) *output.Splog {
	t.Helper()
	splog, err := output.NewSplogWithOptions(output.Options{Stdout: io.Discard, Stderr: io.Discard})
	require.NoError(t, err)
	return splog
}

func newMemCopier(t *testing.T, files map[string]string, opts ...Option) (*Copier, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	for name, contents := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(contents), 0644))
	}
	opts = append([]Option{WithFilesystem(fs), WithSplog(quietSplog(t))}, opts...)
	c, err := New(opts...)
	require.NoError(t, err)
	return c, fs
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func TestCopy(t *testing.T) {
	t.Parallel()

	t.Run("mirrors a nested tree", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{
			"/src/a":     "1",
			"/src/sub/b": "2",
		})

		require.NoError(t, c.Copy("/src", "/repo"))
		require.Equal(t, "1", readFile(t, fs, "/repo/a"))
		require.Equal(t, "2", readFile(t, fs, "/repo/sub/b"))
		require.Equal(t, Stats{Files: 2, Dirs: 1, Bytes: 2}, c.Stats())
	})

	t.Run("overwrites existing files and keeps unrelated ones", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{
			"/src/a":     "new",
			"/repo/a":    "old contents that are longer",
			"/repo/keep": "k",
		})

		require.NoError(t, c.Copy("/src", "/repo"))
		require.Equal(t, "new", readFile(t, fs, "/repo/a"))
		require.Equal(t, "k", readFile(t, fs, "/repo/keep"))
	})

	t.Run("copies an empty directory", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, nil)
		require.NoError(t, fs.MkdirAll("/src/empty", 0755))

		require.NoError(t, c.Copy("/src", "/repo"))
		info, err := fs.Stat("/repo/empty")
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("copies a single file to the destination path", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{"/src/one.txt": "x"})

		require.NoError(t, c.Copy("/src/one.txt", "/out/renamed.txt"))
		require.Equal(t, "x", readFile(t, fs, "/out/renamed.txt"))
	})

	t.Run("missing source writes nothing", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, nil)

		err := c.Copy("/nope", "/repo")
		require.ErrorIs(t, err, uploaderrors.ErrPathNotFound)
		require.Equal(t, uploaderrors.ExitCopyFailed, uploaderrors.ExitCode(err))

		_, statErr := fs.Stat("/repo")
		require.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("skips excluded names", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{
			"/src/a.txt":          "a",
			"/src/debug.log":      "log",
			"/src/node_modules/m": "m",
		}, WithExcludes("*.log", "node_modules"))

		require.NoError(t, c.Copy("/src", "/repo"))
		require.Equal(t, "a", readFile(t, fs, "/repo/a.txt"))
		_, err := fs.Stat("/repo/debug.log")
		require.ErrorIs(t, err, os.ErrNotExist)
		_, err = fs.Stat("/repo/node_modules")
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Equal(t, 2, c.Stats().Skipped)
	})

	t.Run("never copies git metadata", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{
			"/src/a":          "1",
			"/src/.git/HEAD":  "ref: refs/heads/other",
			"/src/sub/.git":   "gitdir: /elsewhere",
			"/src/sub/b":      "2",
			"/repo/.git/HEAD": "ref: refs/heads/main",
			"/src/.gitignore": "*.tmp",
		})

		require.NoError(t, c.Copy("/src", "/repo"))
		require.Equal(t, "ref: refs/heads/main", readFile(t, fs, "/repo/.git/HEAD"))
		require.Equal(t, "*.tmp", readFile(t, fs, "/repo/.gitignore"))
		require.Equal(t, "2", readFile(t, fs, "/repo/sub/b"))
		_, err := fs.Stat("/repo/sub/.git")
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Equal(t, 2, c.Stats().Skipped)
	})

	t.Run("does not recurse into a destination inside the source", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{
			"/src/a":     "1",
			"/src/out/x": "old",
		})

		require.NoError(t, c.Copy("/src", "/src/out"))
		require.Equal(t, "1", readFile(t, fs, "/src/out/a"))
		_, err := fs.Stat("/src/out/out")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("copying a tree onto itself is a no-op", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{"/src/a": "1"})

		require.NoError(t, c.Copy("/src", "/src/"))
		require.Equal(t, "1", readFile(t, fs, "/src/a"))
	})
}

func TestCopyInto(t *testing.T) {
	t.Parallel()

	t.Run("file source lands under its base name", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{"/data/report.csv": "a,b"})

		require.NoError(t, c.CopyInto("/data/report.csv", "/repo"))
		require.Equal(t, "a,b", readFile(t, fs, "/repo/report.csv"))
	})

	t.Run("directory source is mirrored into the directory", func(t *testing.T) {
		t.Parallel()
		c, fs := newMemCopier(t, map[string]string{"/data/a": "1"})

		require.NoError(t, c.CopyInto("/data", "/repo"))
		require.Equal(t, "1", readFile(t, fs, "/repo/a"))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the host filesystem", func(t *testing.T) {
		t.Parallel()
		c, err := New(WithSplog(quietSplog(t)))
		require.NoError(t, err)
		require.Same(t, osfs.Default, c.fs)
	})

	t.Run("rejects malformed exclude patterns", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithExcludes("["))
		require.ErrorContains(t, err, "invalid exclude pattern")
	})
}

func TestCopyOnDisk(t *testing.T) {
	t.Parallel()

	t.Run("preserves contents byte for byte", func(t *testing.T) {
		t.Parallel()
		binary := string([]byte{0, 1, 2, 0xff, '\r', '\n'})
		src := testhelpers.NewSourceTree(t, map[string]string{
			"bin.dat":   binary,
			"sub/b.txt": "hello",
		})
		dst := filepath.Join(t.TempDir(), "repo")

		c, err := New(WithSplog(quietSplog(t)))
		require.NoError(t, err)
		require.NoError(t, c.Copy(src, dst))

		testhelpers.ExpectTree(t, dst, map[string]string{
			"bin.dat":   binary,
			"sub/b.txt": "hello",
		})
	})

	t.Run("skips symbolic links below the root", func(t *testing.T) {
		t.Parallel()
		src := testhelpers.NewSourceTree(t, map[string]string{"a.txt": "a"})
		require.NoError(t, os.Symlink(filepath.Join(src, "a.txt"), filepath.Join(src, "link.txt")))
		dst := filepath.Join(t.TempDir(), "repo")

		c, err := New(WithSplog(quietSplog(t)))
		require.NoError(t, err)
		require.NoError(t, c.Copy(src, dst))

		testhelpers.ExpectTree(t, dst, map[string]string{"a.txt": "a"})
		require.Equal(t, 1, c.Stats().Skipped)
	})

	t.Run("follows a symbolic link given as the source", func(t *testing.T) {
		t.Parallel()
		src := testhelpers.NewSourceTree(t, map[string]string{"a.txt": "a"})
		link := filepath.Join(t.TempDir(), "link")
		require.NoError(t, os.Symlink(src, link))
		dst := filepath.Join(t.TempDir(), "repo")

		c, err := New(WithSplog(quietSplog(t)))
		require.NoError(t, err)
		require.NoError(t, c.Copy(link, dst))

		testhelpers.ExpectTree(t, dst, map[string]string{"a.txt": "a"})
	})

	t.Run("unwritable destination is a copy error", func(t *testing.T) {
		t.Parallel()
		src := testhelpers.NewSourceTree(t, map[string]string{"a.txt": "a"})
		// A regular file where the destination directory should be
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

		c, err := New(WithSplog(quietSplog(t)))
		require.NoError(t, err)

		err = c.Copy(src, filepath.Join(blocker, "repo"))
		require.ErrorIs(t, err, uploaderrors.ErrCopyFailed)
	})
}
