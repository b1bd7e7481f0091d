package ports

import (
	"context"

	"github.com/renato0307/obreiro/internal/domain"
)

// RunReader reads persisted session history
type RunReader interface {
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}

// RunWriter records session history
type RunWriter interface {
	AddToolCall(ctx context.Context, record *domain.ToolCallRecord) error
	CreateRun(ctx context.Context, run *domain.Run) error
	UpdateRun(ctx context.Context, run *domain.Run) error
}

// RunRepository is the composite interface
type RunRepository interface {
	RunReader
	RunWriter
	Close() error
}
