package tools

import (
	"context"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"
)

type ToolRepository interface {
	Create(ctx context.Context, t *domain.Tool) error
	GetByID(ctx context.Context, id int64) (*domain.Tool, error)
	GetByCode(ctx context.Context, code string) (*domain.Tool, error)
	List(ctx context.Context) ([]domain.Tool, error)
	Update(ctx context.Context, id int64, p repository.ToolPatch) (*domain.Tool, error)
	Delete(ctx context.Context, id int64) error
}
