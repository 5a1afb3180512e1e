// Package filecopy mirrors a file or directory tree into a destination.
//
// Only regular files and directories are copied. Symbolic links and special
// files found below the source root are skipped; a symbolic link given as the
// source root itself is followed. Entries named .git are never copied.
package filecopy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
	"repouploader.dev/repouploader/internal/output"
)

const dirPerm = 0o755

// gitDirName is never copied so the target's repository metadata stays intact
const gitDirName = ".git"

// Filesystem is the part of a billy filesystem the copier needs
type Filesystem interface {
	billy.Basic
	billy.Dir
}

// Stats summarises a completed copy
type Stats struct {
	Files   int
	Dirs    int
	Bytes   int64
	Skipped int
}

// Option configures a Copier
type Option func(*Copier)

// WithFilesystem sets the filesystem paths are resolved against
func WithFilesystem(fs Filesystem) Option {
	return func(c *Copier) {
		c.fs = fs
	}
}

// WithExcludes skips entries whose base name matches any of the filepath.Match patterns
func WithExcludes(patterns ...string) Option {
	return func(c *Copier) {
		c.excludes = append(c.excludes, patterns...)
	}
}

// WithSplog sets the logger used for skipped entries
func WithSplog(splog *output.Splog) Option {
	return func(c *Copier) {
		c.splog = splog
	}
}

// Copier copies regular files and directories, overwriting existing files
type Copier struct {
	fs       Filesystem
	excludes []string
	splog    *output.Splog
	stats    Stats
	destRoot string
}

// New creates a Copier on the host filesystem unless WithFilesystem is given
func New(opts ...Option) (*Copier, error) {
	c := &Copier{fs: osfs.Default}
	for _, opt := range opts {
		opt(c)
	}
	for _, pattern := range c.excludes {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	if c.splog == nil {
		c.splog = output.NewSplog()
	}
	return c, nil
}

// Stats returns the counters accumulated by previous copies
func (c *Copier) Stats() Stats {
	return c.stats
}

// Copy mirrors from into to. A regular file is copied to the path to, creating
// its parent directory. A directory has its contents mirrored beneath to.
// A missing source yields a PathNotFoundError before anything is written; any
// other failure yields a CopyError naming the path that failed.
func (c *Copier) Copy(from, to string) error {
	from = filepath.Clean(from)
	to = filepath.Clean(to)

	info, err := c.fs.Stat(from)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return uploaderrors.NewPathNotFoundError(uploaderrors.PathKindSource, from)
		}
		return uploaderrors.NewCopyError(from, err)
	}
	if from == to {
		c.skip(from, "source is the destination")
		return nil
	}

	switch {
	case info.Mode().IsRegular():
		return c.copyFile(from, to, info)
	case info.IsDir():
		if err := c.fs.MkdirAll(to, dirPerm); err != nil {
			return uploaderrors.NewCopyError(to, err)
		}
		c.destRoot = to
		return c.copyDir(from, to)
	default:
		return uploaderrors.NewCopyError(from, fmt.Errorf("unsupported file type %s", info.Mode().Type()))
	}
}

// CopyInto copies from into the directory dir. A directory source has its
// contents mirrored into dir; a file source lands at dir/<base name>.
func (c *Copier) CopyInto(from, dir string) error {
	info, err := c.fs.Stat(from)
	if err == nil && !info.IsDir() {
		return c.Copy(from, filepath.Join(dir, filepath.Base(from)))
	}
	return c.Copy(from, dir)
}

func (c *Copier) copyDir(from, to string) error {
	entries, err := c.fs.ReadDir(from)
	if err != nil {
		return uploaderrors.NewCopyError(from, err)
	}

	for _, entry := range entries {
		src := filepath.Join(from, entry.Name())
		dst := filepath.Join(to, entry.Name())

		if entry.Name() == gitDirName {
			c.skip(src, "git metadata")
			continue
		}
		if c.excluded(entry.Name()) {
			c.skip(src, "excluded")
			continue
		}
		// The destination may live inside the source tree
		if src == c.destRoot {
			c.skip(src, "destination")
			continue
		}

		switch {
		case entry.IsDir():
			if err := c.fs.MkdirAll(dst, dirPerm); err != nil {
				return uploaderrors.NewCopyError(dst, err)
			}
			c.stats.Dirs++
			if err := c.copyDir(src, dst); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := c.copyFile(src, dst, entry); err != nil {
				return err
			}
		default:
			c.skip(src, entry.Mode().Type().String())
		}
	}
	return nil
}

func (c *Copier) copyFile(from, to string, info os.FileInfo) error {
	dir := filepath.Dir(to)
	if err := c.fs.MkdirAll(dir, dirPerm); err != nil {
		return uploaderrors.NewCopyError(dir, err)
	}

	in, err := c.fs.Open(from)
	if err != nil {
		return uploaderrors.NewCopyError(from, err)
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return uploaderrors.NewCopyError(to, err)
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return uploaderrors.NewCopyError(to, err)
	}

	c.stats.Files++
	c.stats.Bytes += n
	return nil
}

func (c *Copier) excluded(name string) bool {
	for _, pattern := range c.excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (c *Copier) skip(path, reason string) {
	c.stats.Skipped++
	c.splog.Debug("Skipping %s (%s)", path, reason)
}
