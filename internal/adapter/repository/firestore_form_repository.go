package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/repository"
	"ordernest/pkg/errors"
)

type firestoreFormRepository struct {
	client *firestore.Client
}

func NewFirestoreFormRepository(client *firestore.Client) repository.FormRepository {
	return &firestoreFormRepository{
		client: client,
	}
}

func (r *firestoreFormRepository) Create(ctx context.Context, form *entity.FormDefinition) error {
	if form.ID == "" {
		doc := r.client.Collection("forms").NewDoc()
		form.ID = doc.ID
	}

	now := time.Now()
	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	_, err := r.client.Collection("forms").Doc(form.ID).Set(ctx, form)
	if err != nil {
		return errors.Internal("Failed to create form", err)
	}

	return nil
}

func (r *firestoreFormRepository) GetByID(ctx context.Context, id string) (*entity.FormDefinition, error) {
	doc, err := r.client.Collection("forms").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Form", err)
		}
		return nil, errors.Internal("Failed to get form", err)
	}

	var form entity.FormDefinition
	if err := doc.DataTo(&form); err != nil {
		return nil, errors.Internal("Failed to parse form data", err)
	}

	return &form, nil
}

func (r *firestoreFormRepository) Update(ctx context.Context, form *entity.FormDefinition) error {
	form.UpdatedAt = time.Now()

	_, err := r.client.Collection("forms").Doc(form.ID).Set(ctx, form)
	if err != nil {
		return errors.Internal("Failed to update form", err)
	}

	return nil
}

func (r *firestoreFormRepository) ListByRetailerID(ctx context.Context, retailerID string, activeOnly bool, limit, offset int) ([]*entity.FormDefinition, int64, error) {
	query := r.client.Collection("forms").Query.
		Where("retailerId", "==", retailerID).
		Where("deletedAt", "==", nil)

	if activeOnly {
		query = query.Where("active", "==", true)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count forms", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var forms []*entity.FormDefinition

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate forms", err)
		}

		var form entity.FormDefinition
		if err := doc.DataTo(&form); err != nil {
			return nil, 0, errors.Internal("Failed to parse form data", err)
		}
		forms = append(forms, &form)
	}

	return forms, total, nil
}

// SoftDelete pauses the form and stamps deletedAt. Forms are never removed
// while orders still reference them.
func (r *firestoreFormRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("forms").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "active", Value: false},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to delete form", err)
	}

	return nil
}
