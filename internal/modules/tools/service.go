package tools

import (
	"context"
	"errors"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"
	"tooltrack/internal/pkg/validator"
)

type Service struct {
	tools ToolRepository
}

func NewService(tools ToolRepository) *Service {
	return &Service{tools: tools}
}

func (s *Service) Create(ctx context.Context, req CreateToolRequest) (*domain.Tool, map[string]string, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fields, ErrValidation
	}

	status := domain.ToolAvailable
	if req.Status != "" {
		status = domain.ToolStatus(req.Status)
		if !domain.ValidToolStatus(status) {
			return nil, nil, ErrInvalidStatus
		}
	}

	// Friendly pre-check; the unique index is the real guarantee.
	if _, err := s.tools.GetByCode(ctx, req.Code); err == nil {
		return nil, nil, ErrDuplicateCode
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	t := &domain.Tool{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      status,
		ImageURL:    req.ImageURL,
	}
	if err := s.tools.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, nil, ErrDuplicateCode
		}
		return nil, nil, err
	}
	return t, nil, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateToolRequest) (*domain.Tool, error) {
	existing, err := s.tools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	patch := repository.ToolPatch{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}

	if req.Status != nil {
		status := domain.ToolStatus(*req.Status)
		if !domain.ValidToolStatus(status) {
			return nil, ErrInvalidStatus
		}
		patch.Status = &status
	}

	if req.Code != nil && *req.Code != existing.Code {
		if _, err := s.tools.GetByCode(ctx, *req.Code); err == nil {
			return nil, ErrDuplicateCode
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	updated, err := s.tools.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCode):
			return nil, ErrDuplicateCode
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	t, err := s.tools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Tool, error) {
	return s.tools.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.tools.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
