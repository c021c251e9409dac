// Package projectfs provides the file system operations used while scaffolding.
//
// Overview:
//   - Responsibility: Ensure output directories, create artifact files, replace files atomically
//   - Key Types: ProjectFS
//   - Concurrency Model: Sequential file operations; callers serialize access to a path
//   - Error Semantics: Errors carry IO_FAILURE with the offending path
//   - Performance Notes: Streaming writes, one fsync per atomic replacement
//
// Usage:
//
//	fs := projectfs.New(".", logger)
//	err := fs.EnsureDirectory("src/main/java/com/example/model")
//	f, err := fs.Create("src/main/java/com/example/model/Person.java")
//	err = fs.WriteFileAtomic("pom.xml", data)
package projectfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/core/log"
)

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// ProjectFS resolves relative paths against a root directory.
//
// Parameters:
//   - rootDir: Root directory for relative paths
//   - logger: Receives debug records for each operation
//
// Concurrency:
//   - Not safe for concurrent writes to the same path
type ProjectFS struct {
	rootDir string
	logger  log.Logger
}

// New creates a ProjectFS rooted at rootDir. A nil logger discards output.
func New(rootDir string, logger log.Logger) *ProjectFS {
	if logger == nil {
		logger = log.Nop()
	}
	return &ProjectFS{rootDir: rootDir, logger: logger}
}

// Path returns the absolute-or-rooted form of path.
// Absolute paths are returned unchanged.
func (p *ProjectFS) Path(path string) string {
	if filepath.IsAbs(path) || p.rootDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(p.rootDir, path)
}

// EnsureDirectory creates path and any missing parents.
//
// Returns:
//   - error: IO_FAILURE if the directory cannot be created
func (p *ProjectFS) EnsureDirectory(path string) error {
	full := p.Path(path)
	if err := os.MkdirAll(full, dirMode); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.EnsureDirectory", err, "ensure directory %s", path)
	}
	p.logger.Debug("ensured directory", log.Str("path", full))
	return nil
}

// Create creates or truncates the file at path for writing.
// The caller must close the returned writer.
func (p *ProjectFS) Create(path string) (io.WriteCloser, error) {
	full := p.Path(path)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return nil, errors.Wrapf(errors.CodeIO, "projectfs.Create", err, "create %s", path)
	}
	p.logger.Debug("created file", log.Str("path", full))
	return f, nil
}

// ReadFile reads the whole file at path.
func (p *ProjectFS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(p.Path(path))
	if err != nil {
		return nil, errors.Wrapf(errors.CodeIO, "projectfs.ReadFile", err, "read %s", path)
	}
	return data, nil
}

// FileExists reports whether a regular file exists at path.
func (p *ProjectFS) FileExists(path string) (bool, error) {
	info, err := os.Stat(p.Path(path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(errors.CodeIO, "projectfs.FileExists", err, "stat %s", path)
}

// WriteFileAtomic replaces path with data.
//
// The content is written to a temporary file in the same directory, synced,
// and renamed over the target, so readers observe either the old or the new
// file. An existing file keeps its permission bits.
func (p *ProjectFS) WriteFileAtomic(path string, data []byte) (err error) {
	full := p.Path(path)
	dir := filepath.Dir(full)

	mode := fileMode
	if info, statErr := os.Stat(full); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".*.tmp")
	if err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "create temporary file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "write %s", tmpName)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "close %s", tmpName)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "chmod %s", tmpName)
	}
	if err = os.Rename(tmpName, full); err != nil {
		return errors.Wrapf(errors.CodeIO, "projectfs.WriteFileAtomic", err, "replace %s", path)
	}

	p.logger.Debug("replaced file", log.Str("path", full), log.Int("bytes", len(data)))
	return nil
}
