package repository

import (
	"context"
	"errors"
	"time"

	"tooltrack/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

type toolModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Code        string    `gorm:"column:code;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category"`
	Location    string    `gorm:"column:location"`
	Status      string    `gorm:"column:status"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (toolModel) TableName() string { return "tools" }

func toDomainTool(m toolModel) *domain.Tool {
	return &domain.Tool{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		Category:    m.Category,
		Location:    m.Location,
		Status:      domain.ToolStatus(m.Status),
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toToolModel(t *domain.Tool) toolModel {
	return toolModel{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.Code,
		Description: t.Description,
		Category:    t.Category,
		Location:    t.Location,
		Status:      string(t.Status),
		ImageURL:    t.ImageURL,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// duplicateKey recognizes unique-index violations from both backends:
// pgconn surfaces SQLSTATE 23505, the sqlite driver goes through GORM's
// translated ErrDuplicatedKey.
func duplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *ToolRepository) Create(ctx context.Context, t *domain.Tool) error {
	m := toToolModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if duplicateKey(tx.Error) {
			return ErrDuplicateCode
		}
		return tx.Error
	}
	*t = *toDomainTool(m)
	return nil
}

func (r *ToolRepository) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	var m toolModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainTool(m), nil
}

func (r *ToolRepository) GetByCode(ctx context.Context, code string) (*domain.Tool, error) {
	var m toolModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainTool(m), nil
}

func (r *ToolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	var ms []toolModel
	tx := r.db.WithContext(ctx).Order("name ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Tool, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainTool(m))
	}
	return out, nil
}

// ToolPatch carries the mutable tool fields; nil means "leave unchanged".
type ToolPatch struct {
	Name        *string
	Code        *string
	Description *string
	Category    *string
	Location    *string
	Status      *domain.ToolStatus
	ImageURL    *string
}

func (r *ToolRepository) Update(ctx context.Context, id int64, p ToolPatch) (*domain.Tool, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Code != nil {
		updates["code"] = *p.Code
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}

	tx := r.db.WithContext(ctx).Model(&toolModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		if duplicateKey(tx.Error) {
			return nil, ErrDuplicateCode
		}
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ToolRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&toolModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ToolRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&toolModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *ToolRepository) CountByStatus(ctx context.Context, status domain.ToolStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&toolModel{}).Where("status = ?", string(status)).Count(&cnt)
	return cnt, tx.Error
}
