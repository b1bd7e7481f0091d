package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renato0307/obreiro/internal/backlog"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// BacklogService reads and updates the task backlog file
type BacklogService struct {
	path string
}

// NewBacklogService creates a BacklogService for the backlog at path
func NewBacklogService(path string) *BacklogService {
	return &BacklogService{path: path}
}

// Path returns the backlog location
func (s *BacklogService) Path() string {
	return s.path
}

// Load parses the backlog file
func (s *BacklogService) Load() (*backlog.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backlog: %w", err)
	}
	return backlog.Parse(string(data)), nil
}

// Raw returns the backlog file content unparsed
func (s *BacklogService) Raw() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read backlog: %w", err)
	}
	return string(data), nil
}

// Save writes the document back, replacing the file atomically
func (s *BacklogService) Save(doc *backlog.Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backlog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.md")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(doc.Render()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write backlog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write backlog: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set backlog permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace backlog: %w", err)
	}
	return nil
}

// NextTask returns the task to work on: the highest priority one when byPriority is set,
// otherwise the first incomplete task in file order
func (s *BacklogService) NextTask(byPriority bool) (*domain.Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	var task domain.Task
	var ok bool
	if byPriority {
		task, ok = doc.HighestPriority()
	} else {
		task, ok = doc.Next()
	}
	if !ok {
		return nil, domain.ErrNoPendingTasks
	}
	return &task, nil
}

// Complete marks the task with the given ID as done and saves the file
func (s *BacklogService) Complete(id string) (*domain.Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	task, err := doc.Complete(id)
	if err != nil {
		return nil, err
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	logging.Logger.Info("Task completed", "id", task.ID, "description", task.Description)
	return &task, nil
}

// CompleteByDescription marks the first pending task whose description contains text
func (s *BacklogService) CompleteByDescription(text string) (*domain.Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	task, err := doc.CompleteByDescription(text)
	if err != nil {
		return nil, err
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	logging.Logger.Info("Task completed", "id", task.ID, "description", task.Description)
	return &task, nil
}

// Add appends a new task. A missing backlog file is created.
func (s *BacklogService) Add(description string, priority domain.Priority, tags []string) (*domain.Task, error) {
	doc, err := s.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		doc = backlog.Parse("")
	}
	task, err := doc.Add(description, priority, tags)
	if err != nil {
		return nil, err
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	logging.Logger.Info("Task added", "id", task.ID, "description", task.Description, "priority", task.Priority)
	return &task, nil
}

// Summary returns every task and the completion statistics
func (s *BacklogService) Summary() ([]domain.Task, domain.TaskStats, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, domain.TaskStats{}, err
	}
	return doc.Tasks(), doc.Stats(), nil
}
