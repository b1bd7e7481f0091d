package ports

import (
	"context"

	"github.com/renato0307/obreiro/internal/domain"
)

// ModelClient sends chat completion requests to the language-model service
type ModelClient interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error)
}
