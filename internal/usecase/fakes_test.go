package usecase

import (
	"context"
	"fmt"
	"sync"

	"ordernest/internal/domain/entity"
	"ordernest/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeFormRepo struct {
	forms  map[string]*entity.FormDefinition
	nextID int
}

func newFakeFormRepo(forms ...*entity.FormDefinition) *fakeFormRepo {
	repo := &fakeFormRepo{forms: make(map[string]*entity.FormDefinition)}
	for _, f := range forms {
		repo.forms[f.ID] = f
	}
	return repo
}

func (r *fakeFormRepo) Create(_ context.Context, form *entity.FormDefinition) error {
	if form.ID == "" {
		r.nextID++
		form.ID = fmt.Sprintf("form-%d", r.nextID)
	}
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) GetByID(_ context.Context, id string) (*entity.FormDefinition, error) {
	form, ok := r.forms[id]
	if !ok {
		return nil, errors.NotFound("Form", nil)
	}
	copied := *form
	return &copied, nil
}

func (r *fakeFormRepo) Update(_ context.Context, form *entity.FormDefinition) error {
	if _, ok := r.forms[form.ID]; !ok {
		return errors.NotFound("Form", nil)
	}
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) ListByRetailerID(_ context.Context, retailerID string, activeOnly bool, limit, offset int) ([]*entity.FormDefinition, int64, error) {
	var out []*entity.FormDefinition
	for _, f := range r.forms {
		if f.RetailerID != retailerID || f.DeletedAt != nil {
			continue
		}
		if activeOnly && !f.Active {
			continue
		}
		out = append(out, f)
	}
	return out, int64(len(out)), nil
}

func (r *fakeFormRepo) SoftDelete(_ context.Context, id string) error {
	form, ok := r.forms[id]
	if !ok {
		return errors.NotFound("Form", nil)
	}
	form.Active = false
	now := form.UpdatedAt
	form.DeletedAt = &now
	return nil
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]*entity.Order
	updates map[string][]*entity.OrderUpdate
	nextID  int

	// conflictOnce simulates losing one race: the first append fails with a
	// CONFLICT after flipping the stored order to conflictStatus.
	conflictOnce   bool
	conflictStatus entity.OrderStatus
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{
		orders:  make(map[string]*entity.Order),
		updates: make(map[string][]*entity.OrderUpdate),
	}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order, initial *entity.OrderUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.nextID++
		order.ID = fmt.Sprintf("order-%d", r.nextID)
	}
	initial.OrderID = order.ID
	initial.ID = fmt.Sprintf("%s-update-1", order.ID)
	r.orders[order.ID] = order
	r.updates[order.ID] = []*entity.OrderUpdate{initial}
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByCustomerID(_ context.Context, customerID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o *entity.Order) bool {
		return o.CustomerID == customerID && (status == "" || o.Status == status)
	})
}

func (r *fakeOrderRepo) ListByRetailerID(_ context.Context, retailerID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o *entity.Order) bool {
		return o.RetailerID == retailerID && (status == "" || o.Status == status)
	})
}

func (r *fakeOrderRepo) list(match func(*entity.Order) bool) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) AppendStatusUpdate(_ context.Context, orderID string, expected entity.OrderStatus, update *entity.OrderUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return errors.NotFound("Order", nil)
	}

	if r.conflictOnce {
		r.conflictOnce = false
		order.Status = r.conflictStatus
		return errors.Conflict("Order was updated concurrently", nil)
	}

	if order.Status != expected {
		return errors.Conflict("Order was updated concurrently", nil)
	}

	update.ID = fmt.Sprintf("%s-update-%d", orderID, len(r.updates[orderID])+1)
	order.Status = update.Status
	order.UpdatedAt = update.CreatedAt
	r.updates[orderID] = append(r.updates[orderID], update)
	return nil
}

func (r *fakeOrderRepo) ListUpdates(_ context.Context, orderID string) ([]*entity.OrderUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates[orderID], nil
}

func (r *fakeOrderRepo) MarkUpdateSeen(_ context.Context, orderID, updateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.updates[orderID] {
		if u.ID == updateID {
			u.SeenByCustomer = true
			return nil
		}
	}
	return errors.NotFound("Order update", nil)
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files map[string]*entity.FileMetadata
}

func newFakeFileRepo(files ...*entity.FileMetadata) *fakeFileRepo {
	repo := &fakeFileRepo{files: make(map[string]*entity.FileMetadata)}
	for _, f := range files {
		repo.files[f.ID] = f
	}
	return repo
}

func (r *fakeFileRepo) Create(_ context.Context, metadata *entity.FileMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[metadata.ID] = metadata
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	metadata, ok := r.files[id]
	if !ok {
		return nil, errors.NotFound("File metadata", nil)
	}
	return metadata, nil
}

func (r *fakeFileRepo) GetByURL(_ context.Context, url string) (*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.URL == url {
			return f, nil
		}
	}
	return nil, errors.NotFound("File metadata", nil)
}

func (r *fakeFileRepo) ListByOrderID(_ context.Context, orderID string) ([]*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var files []*entity.FileMetadata
	for _, f := range r.files {
		if f.OrderID == orderID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) AttachToOrder(_ context.Context, id, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	metadata, ok := r.files[id]
	if !ok {
		return errors.NotFound("File metadata", nil)
	}
	metadata.OrderID = orderID
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

type recordingNotifier struct {
	events []*entity.OrderUpdate
}

func (n *recordingNotifier) NotifyOrderUpdate(_ *entity.Order, update *entity.OrderUpdate) {
	n.events = append(n.events, update)
}
