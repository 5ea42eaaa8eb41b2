package repository

import (
	"context"

	"ordernest/internal/domain/entity"
)

type FileMetadataRepository interface {
	Create(ctx context.Context, metadata *entity.FileMetadata) error
	GetByID(ctx context.Context, id string) (*entity.FileMetadata, error)
	GetByURL(ctx context.Context, url string) (*entity.FileMetadata, error)
	ListByOrderID(ctx context.Context, orderID string) ([]*entity.FileMetadata, error)

	// AttachToOrder stamps the owning order onto a metadata record. Attached
	// files are protected from deletion for the lifetime of the order.
	AttachToOrder(ctx context.Context, id, orderID string) error
	Delete(ctx context.Context, id string) error
}
