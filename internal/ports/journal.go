package ports

import (
	"context"

	"github.com/renato0307/obreiro/internal/domain"
)

// JournalWriter appends audit entries after each commit
type JournalWriter interface {
	Append(ctx context.Context, entry domain.JournalEntry) error
}
