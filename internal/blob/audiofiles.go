// Package blob manages audio file lifecycle on disk. Locations are a pure
// function of the file name under a dedicated audio directory, so paths are
// always re-derivable from a note's content record alone.
package blob

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// AudioFiles maps audio file names to locations under baseDir and deletes
// them on request. Directory creation is lazy and idempotent; its failure is
// logged, never fatal, because the derived path must stay well-defined.
type AudioFiles struct {
	baseDir string
	logger  *slog.Logger
}

// New creates an audio file store rooted at baseDir.
func New(baseDir string, logger *slog.Logger) *AudioFiles {
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioFiles{baseDir: baseDir, logger: logger}
}

// LocationFor derives the on-disk location for a file name and makes sure the
// containing directory exists.
func (a *AudioFiles) LocationFor(fileName string) string {
	if err := os.MkdirAll(a.baseDir, 0o755); err != nil {
		a.logger.Error("failed to create audio directory", "dir", a.baseDir, "error", err)
	}
	return filepath.Join(a.baseDir, fileName)
}

// Exists reports whether a file is present at the location.
func (a *AudioFiles) Exists(location string) bool {
	_, err := os.Stat(location)
	return err == nil
}

// Put installs a finished recording at the location atomically, so a partially
// written file can never sit behind a live content record.
func (a *AudioFiles) Put(location string, r io.Reader) error {
	if err := atomic.WriteFile(location, r); err != nil {
		return fmt.Errorf("failed to write audio file %q: %w", location, err)
	}
	a.logger.Info("wrote audio file", "location", location)
	return nil
}

// Delete removes the file at the location. Absence and failure are both
// non-fatal, logged conditions; the record-level deletion has already
// happened and must not be blocked.
func (a *AudioFiles) Delete(location string) {
	err := os.Remove(location)
	switch {
	case err == nil:
		a.logger.Info("deleted audio file", "location", location)
	case os.IsNotExist(err):
		a.logger.Info("audio file already absent", "location", location)
	default:
		a.logger.Warn("failed to delete audio file", "location", location, "error", err)
	}
}
