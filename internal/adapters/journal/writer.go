// Package journal appends audit entries to the project's markdown journal.
package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// FileWriter implements ports.JournalWriter on a markdown file.
// Appends hold an exclusive file lock so concurrent obreiro processes never interleave entries.
type FileWriter struct {
	mu   sync.Mutex
	path string
}

// Compile-time interface verification
var _ ports.JournalWriter = (*FileWriter)(nil)

// NewFileWriter creates a FileWriter for the journal at path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the journal location
func (w *FileWriter) Path() string {
	return w.path
}

// Append implements JournalWriter.Append
func (w *FileWriter) Append(ctx context.Context, entry domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to lock journal: %w", err)
	}
	defer unlockFile(file)

	if _, err := file.WriteString(entry.Format()); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}

	logging.Logger.Info("Journal entry appended", "path", w.path, "commit", entry.CommitHash)
	return nil
}

// CountEntries returns how many entries the journal at path holds; a missing journal has none
func CountEntries(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read journal: %w", err)
	}

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "## ") {
			count++
		}
	}
	return count, nil
}
