package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/middleware"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/notify"
)

type stubFriendStore struct {
	requests map[int64]*models.FriendRequest
	nextID   int64
}

func (s *stubFriendStore) CreateRequest(_ context.Context, request *models.FriendRequest) (int64, error) {
	for _, r := range s.requests {
		if r.Status == models.RequestPending &&
			((r.FromUserID == request.FromUserID && r.ToUserID == request.ToUserID) ||
				(r.FromUserID == request.ToUserID && r.ToUserID == request.FromUserID)) {
			return 0, apperrors.ErrRequestAlreadySent
		}
	}
	s.nextID++
	stored := *request
	stored.ID = s.nextID
	s.requests[s.nextID] = &stored
	return s.nextID, nil
}

func (s *stubFriendStore) GetRequestByID(_ context.Context, id int64) (*models.FriendRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *stubFriendStore) ListIncomingPending(_ context.Context, userID int64) ([]*models.FriendRequest, error) {
	result := []*models.FriendRequest{}
	for _, r := range s.requests {
		if r.ToUserID == userID && r.Status == models.RequestPending {
			copied := *r
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *stubFriendStore) RespondRequest(_ context.Context, request *models.FriendRequest, status models.RequestStatus) (int64, error) {
	stored, ok := s.requests[request.ID]
	if !ok || stored.Status != models.RequestPending {
		return 0, apperrors.ErrRequestNotPending
	}
	stored.Status = status
	return 1, nil
}

func (s *stubFriendStore) ListFriendships(_ context.Context, _ int64) ([]*models.Friendship, error) {
	return []*models.Friendship{}, nil
}

func (s *stubFriendStore) GetFriendshipByID(_ context.Context, _ int64) (*models.Friendship, error) {
	return nil, apperrors.ErrFriendshipNotFound
}

func (s *stubFriendStore) DeleteFriendship(_ context.Context, _ int64) error {
	return apperrors.ErrFriendshipNotFound
}

type stubUserStore struct{}

func (stubUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if id > 100 {
		return nil, apperrors.ErrUserNotFound
	}
	return &models.User{ID: id, DisplayName: "User", IsActive: true}, nil
}

type stubNotifier struct{}

func (stubNotifier) Notify(int64, *notify.Event) {}

func newTestRouter(asUserID int64) (*gin.Engine, *stubFriendStore) {
	gin.SetMode(gin.TestMode)

	store := &stubFriendStore{requests: map[int64]*models.FriendRequest{}}
	service := services.NewFriendshipService(store, stubUserStore{}, stubNotifier{}, zerolog.Nop())
	controller := NewFriendController(service, nil, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, asUserID)
		c.Next()
	})
	router.POST("/friends/request", controller.SendRequest)
	router.GET("/friends/requests", controller.ListRequests)
	router.PUT("/friends/requests/:id", controller.RespondRequest)

	return router, store
}

func TestSendRequestEndpoint(t *testing.T) {
	router, store := newTestRouter(1)

	body, _ := json.Marshal(map[string]interface{}{"toUserId": 2, "message": "hi"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/friends/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.requests) != 1 {
		t.Fatalf("expected 1 stored request, got %d", len(store.requests))
	}
}

func TestSendRequestEndpointSelf(t *testing.T) {
	router, _ := newTestRouter(1)

	body, _ := json.Marshal(map[string]interface{}{"toUserId": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/friends/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSendRequestEndpointDuplicate(t *testing.T) {
	router, _ := newTestRouter(1)

	body, _ := json.Marshal(map[string]interface{}{"toUserId": 2})
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/friends/request", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d: %s", i+1, want, w.Code, w.Body.String())
		}
	}
}

func TestRespondRequestEndpoint(t *testing.T) {
	router, store := newTestRouter(2)
	store.requests[7] = &models.FriendRequest{ID: 7, FromUserID: 1, ToUserID: 2, Status: models.RequestPending}
	store.nextID = 7

	body, _ := json.Marshal(map[string]string{"status": "accepted"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/friends/requests/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Second response hits the terminal state.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/friends/requests/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeat, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRespondRequestEndpointInvalidStatus(t *testing.T) {
	router, store := newTestRouter(2)
	store.requests[7] = &models.FriendRequest{ID: 7, FromUserID: 1, ToUserID: 2, Status: models.RequestPending}

	body, _ := json.Marshal(map[string]string{"status": "maybe"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/friends/requests/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
