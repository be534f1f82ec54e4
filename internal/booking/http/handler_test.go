package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/booking"
	"shareit/internal/identity"
)

type fakeService struct {
	created      *booking.Booking
	createErr    error
	got          *booking.Booking
	getErr       error
	listState    string
	listFrom     int
	listSize     int
	listAsOwner  bool
	listCallerID int64
}

func (f *fakeService) Create(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b := &booking.Booking{
		ID:       1,
		ItemID:   req.ItemID,
		BookerID: req.BookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   booking.StatusWaiting,
	}
	f.created = b
	return b, nil
}

func (f *fakeService) GetByID(context.Context, int64, int64) (*booking.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.got, nil
}

func (f *fakeService) UpdateStatus(context.Context, int64, int64, bool) (*booking.Booking, error) {
	return f.got, nil
}

func (f *fakeService) ListForBooker(_ context.Context, userID int64, state string, from, size int) ([]*booking.Booking, error) {
	f.listAsOwner = false
	f.listCallerID = userID
	f.listState = state
	f.listFrom = from
	f.listSize = size
	return nil, nil
}

func (f *fakeService) ListForOwner(_ context.Context, userID int64, state string, from, size int) ([]*booking.Booking, error) {
	f.listAsOwner = true
	f.listCallerID = userID
	f.listState = state
	f.listFrom = from
	f.listSize = size
	return nil, nil
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), identity.Required())
	return r
}

func doRequest(r *gin.Engine, method, path, callerID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBooking(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	start := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	body := `{"itemId":1,"start":"` + start + `","end":"` + end + `"}`

	w := doRequest(r, http.MethodPost, "/bookings", "2", body)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, int64(2), resp.Booker.ID)
	assert.Equal(t, int64(1), resp.Item.ID)
}

func TestCreateBookingMissingHeader(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodPost, "/bookings", "", `{"itemId":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodPost, "/bookings", "2", `{"itemId":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}

func TestCreateBookingServiceError(t *testing.T) {
	svc := &fakeService{createErr: booking.ErrItemUnavailable}
	r := setupRouter(svc)

	start := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	body := `{"itemId":1,"start":"` + start + `","end":"` + end + `"}`

	w := doRequest(r, http.MethodPost, "/bookings", "2", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Item is not available.")
}

func TestListDefaults(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet, "/bookings", "2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.listAsOwner)
	assert.Equal(t, int64(2), svc.listCallerID)
	assert.Equal(t, "ALL", svc.listState)
	assert.Equal(t, 0, svc.listFrom)
	assert.Equal(t, 20, svc.listSize)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListOwnerScope(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet, "/bookings/owner?state=PAST&from=5&size=2", "7", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.listAsOwner)
	assert.Equal(t, int64(7), svc.listCallerID)
	assert.Equal(t, "PAST", svc.listState)
	assert.Equal(t, 5, svc.listFrom)
	assert.Equal(t, 2, svc.listSize)
}

func TestListRejectsBadPaging(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	for _, query := range []string{"?from=-1", "?size=0", "?size=abc"} {
		w := doRequest(r, http.MethodGet, "/bookings"+query, "2", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestUpdateStatusRequiresApprovedParam(t *testing.T) {
	svc := &fakeService{got: &booking.Booking{ID: 1, Status: booking.StatusApproved}}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodPatch, "/bookings/1", "1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPatch, "/bookings/1?approved=true", "1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "APPROVED", resp.Status)
}

func TestGetBookingNotFoundEnvelope(t *testing.T) {
	svc := &fakeService{getErr: booking.ErrNotFound}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet, "/bookings/9", "3", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"NOT_FOUND"`)
	assert.Contains(t, w.Body.String(), "Booking not found.")
}
