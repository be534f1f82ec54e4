package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID int64
	users  map[int64]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User)}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = f.nextID
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	for id, existing := range f.users {
		if existing.Email == u.Email && id != u.ID {
			return ErrEmailAlreadyUsed
		}
	}
	if _, ok := f.users[u.ID]; !ok {
		return ErrNotFound
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestCreateValidatesFields(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "", Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrInvalidUpdate)

	_, err = svc.Create(ctx, CreateRequest{Name: "Alice", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidUpdate)

	u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Bob", Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestUpdateKeepsMissingFields(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
	require.NoError(t, err)

	email := "alice@b.com"
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@b.com", updated.Email)
}

func TestUpdateMissingUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	name := "Nobody"
	_, err := svc.Update(context.Background(), 42, UpdateRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}
