package itemrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/item"
	"shareit/internal/user"
)

type fakeRepo struct {
	nextID   int64
	requests map[int64]*ItemRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[int64]*ItemRequest)}
}

func (f *fakeRepo) Create(_ context.Context, req *ItemRequest) error {
	f.nextID++
	req.ID = f.nextID
	stored := *req
	f.requests[req.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*ItemRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRepo) ListByRequester(_ context.Context, requesterID int64) ([]*ItemRequest, error) {
	var out []*ItemRequest
	for _, req := range f.requests {
		if req.RequesterID == requesterID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOthers(_ context.Context, requesterID int64, _, _ int) ([]*ItemRequest, error) {
	var out []*ItemRequest
	for _, req := range f.requests {
		if req.RequesterID != requesterID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users map[int64]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(context.Context, user.CreateRequest) (*user.User, error) {
	panic("unexpected call")
}

func (f *fakeUsers) List(context.Context) ([]*user.User, error) {
	panic("unexpected call")
}

func (f *fakeUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	panic("unexpected call")
}

func (f *fakeUsers) Delete(context.Context, int64) error {
	panic("unexpected call")
}

type fakeItems struct {
	items []*item.Item
}

func (f *fakeItems) ByRequestIDs(_ context.Context, ids []int64) ([]*item.Item, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*item.Item
	for _, i := range f.items {
		if i.RequestID != nil && wanted[*i.RequestID] {
			out = append(out, i)
		}
	}
	return out, nil
}

func newTestService() (Service, *fakeRepo, *fakeItems) {
	repo := newFakeRepo()
	users := &fakeUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "alice", Email: "alice@example.com"},
		2: {ID: 2, Name: "bob", Email: "bob@example.com"},
	}}
	items := &fakeItems{}
	return NewService(repo, users, items), repo, items
}

func TestCreateRequiresExistingUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 99, "need a ladder")

	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestCreateSetsCreated(t *testing.T) {
	svc, _, _ := newTestService()

	req, err := svc.Create(context.Background(), 1, "need a ladder")

	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.WithinDuration(t, time.Now(), req.Created, time.Minute)
}

func TestGetByIDMissingRequest(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 42)

	require.Error(t, err)
	assert.EqualError(t, err, "Request not found.")
}

func TestGetByIDAttachesItems(t *testing.T) {
	svc, _, items := newTestService()
	ctx := context.Background()

	req, err := svc.Create(ctx, 1, "need a ladder")
	require.NoError(t, err)

	items.items = []*item.Item{
		{ID: 5, OwnerID: 2, Name: "Ladder", Available: true, RequestID: &req.ID},
	}

	got, err := svc.GetByID(ctx, 2, req.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(5), got.Items[0].ID)
}

func TestListOthersExcludesOwn(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	own, err := svc.Create(ctx, 1, "need a ladder")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "need a drill")
	require.NoError(t, err)

	others, err := svc.ListOthers(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.NotEqual(t, own.ID, others[0].ID)

	mine, err := svc.ListOwn(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, own.ID, mine[0].ID)
}
