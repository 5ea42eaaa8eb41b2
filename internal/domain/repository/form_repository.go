package repository

import (
	"context"

	"ordernest/internal/domain/entity"
)

type FormRepository interface {
	Create(ctx context.Context, form *entity.FormDefinition) error
	GetByID(ctx context.Context, id string) (*entity.FormDefinition, error)
	Update(ctx context.Context, form *entity.FormDefinition) error
	ListByRetailerID(ctx context.Context, retailerID string, activeOnly bool, limit, offset int) ([]*entity.FormDefinition, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
