package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/notify"
)

type fakeFriendStore struct {
	requests    map[int64]*models.FriendRequest
	friendships map[int64]*models.Friendship
	nextID      int64
}

func newFakeFriendStore() *fakeFriendStore {
	return &fakeFriendStore{
		requests:    map[int64]*models.FriendRequest{},
		friendships: map[int64]*models.Friendship{},
		nextID:      1,
	}
}

func (f *fakeFriendStore) CreateRequest(_ context.Context, request *models.FriendRequest) (int64, error) {
	userA, userB := models.CanonicalPair(request.FromUserID, request.ToUserID)
	for _, fr := range f.friendships {
		if fr.UserAID == userA && fr.UserBID == userB {
			return 0, apperrors.ErrAlreadyFriends
		}
	}
	for _, r := range f.requests {
		if r.Status != models.RequestPending {
			continue
		}
		sameDir := r.FromUserID == request.FromUserID && r.ToUserID == request.ToUserID
		reverse := r.FromUserID == request.ToUserID && r.ToUserID == request.FromUserID
		if sameDir || reverse {
			return 0, apperrors.ErrRequestAlreadySent
		}
	}

	id := f.nextID
	f.nextID++
	stored := *request
	stored.ID = id
	f.requests[id] = &stored
	return id, nil
}

func (f *fakeFriendStore) GetRequestByID(_ context.Context, id int64) (*models.FriendRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeFriendStore) ListIncomingPending(_ context.Context, userID int64) ([]*models.FriendRequest, error) {
	result := []*models.FriendRequest{}
	for _, r := range f.requests {
		if r.ToUserID == userID && r.Status == models.RequestPending {
			copied := *r
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeFriendStore) RespondRequest(_ context.Context, request *models.FriendRequest, status models.RequestStatus) (int64, error) {
	stored, ok := f.requests[request.ID]
	if !ok || stored.Status != models.RequestPending {
		return 0, apperrors.ErrRequestNotPending
	}
	stored.Status = status
	if status != models.RequestAccepted {
		return 0, nil
	}

	userA, userB := models.CanonicalPair(request.FromUserID, request.ToUserID)
	for _, fr := range f.friendships {
		if fr.UserAID == userA && fr.UserBID == userB {
			return 0, apperrors.ErrAlreadyFriends
		}
	}
	id := f.nextID
	f.nextID++
	f.friendships[id] = &models.Friendship{
		ID:      id,
		UserAID: userA,
		UserBID: userB,
		Status:  "active",
	}
	return id, nil
}

func (f *fakeFriendStore) ListFriendships(_ context.Context, userID int64) ([]*models.Friendship, error) {
	result := []*models.Friendship{}
	for _, fr := range f.friendships {
		if fr.UserAID == userID || fr.UserBID == userID {
			copied := *fr
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeFriendStore) GetFriendshipByID(_ context.Context, id int64) (*models.Friendship, error) {
	friendship, ok := f.friendships[id]
	if !ok {
		return nil, apperrors.ErrFriendshipNotFound
	}
	copied := *friendship
	return &copied, nil
}

func (f *fakeFriendStore) DeleteFriendship(_ context.Context, id int64) error {
	if _, ok := f.friendships[id]; !ok {
		return apperrors.ErrFriendshipNotFound
	}
	delete(f.friendships, id)
	return nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeHub struct {
	events map[int64][]*notify.Event
}

func newFakeHub() *fakeHub {
	return &fakeHub{events: map[int64][]*notify.Event{}}
}

func (f *fakeHub) Notify(userID int64, event *notify.Event) {
	f.events[userID] = append(f.events[userID], event)
}

func newTestFriendshipService() (*FriendshipService, *fakeFriendStore, *fakeHub) {
	store := newFakeFriendStore()
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, DisplayName: "Alice", IsActive: true},
		2: {ID: 2, DisplayName: "Bob", IsActive: true},
		3: {ID: 3, DisplayName: "Carol", IsActive: false},
	}}
	hub := newFakeHub()
	service := NewFriendshipService(store, users, hub, zerolog.Nop())
	return service, store, hub
}

func TestSendRequestToSelf(t *testing.T) {
	service, store, _ := newTestFriendshipService()

	_, err := service.SendRequest(context.Background(), 1, &dto.SendFriendRequestRequest{ToUserID: 1})
	if !errors.Is(err, apperrors.ErrSelfFriendRequest) {
		t.Fatalf("expected ErrSelfFriendRequest, got %v", err)
	}
	if len(store.requests) != 0 {
		t.Fatalf("expected no stored request, got %d", len(store.requests))
	}
}

func TestSendRequestToInactiveUser(t *testing.T) {
	service, _, _ := newTestFriendshipService()

	_, err := service.SendRequest(context.Background(), 1, &dto.SendFriendRequestRequest{ToUserID: 3})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendRequestNotifiesRecipient(t *testing.T) {
	service, _, hub := newTestFriendshipService()

	request, err := service.SendRequest(context.Background(), 1, &dto.SendFriendRequestRequest{ToUserID: 2, Message: "hi"})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if request.Status != models.RequestPending {
		t.Errorf("expected pending status, got %s", request.Status)
	}

	events := hub.events[2]
	if len(events) != 1 {
		t.Fatalf("expected 1 event for recipient, got %d", len(events))
	}
	if events[0].Type != notify.EventFriendRequest || events[0].FromUserID != 1 {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestDuplicatePendingRequestRejected(t *testing.T) {
	service, _, _ := newTestFriendshipService()
	ctx := context.Background()

	if _, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2}); err != nil {
		t.Fatalf("first request: %v", err)
	}

	// Same direction again.
	if _, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2}); !errors.Is(err, apperrors.ErrRequestAlreadySent) {
		t.Errorf("same direction: expected ErrRequestAlreadySent, got %v", err)
	}

	// Reverse direction while the first is pending.
	if _, err := service.SendRequest(ctx, 2, &dto.SendFriendRequestRequest{ToUserID: 1}); !errors.Is(err, apperrors.ErrRequestAlreadySent) {
		t.Errorf("reverse direction: expected ErrRequestAlreadySent, got %v", err)
	}
}

func TestAcceptCreatesSingleFriendship(t *testing.T) {
	service, store, hub := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	answered, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted)
	if err != nil {
		t.Fatalf("RespondToRequest: %v", err)
	}
	if answered.Status != models.RequestAccepted {
		t.Errorf("expected accepted, got %s", answered.Status)
	}
	if answered.RespondedAt == nil {
		t.Error("expected RespondedAt to be set")
	}

	if len(store.friendships) != 1 {
		t.Fatalf("expected exactly one friendship, got %d", len(store.friendships))
	}
	for _, friendship := range store.friendships {
		if friendship.UserAID != 1 || friendship.UserBID != 2 {
			t.Errorf("expected canonical pair (1,2), got (%d,%d)", friendship.UserAID, friendship.UserBID)
		}
	}

	events := hub.events[1]
	if len(events) != 1 || events[0].Type != notify.EventRequestAccepted {
		t.Errorf("expected one accepted event for sender, got %+v", events)
	}
}

func TestRespondIsTerminal(t *testing.T) {
	service, _, _ := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted); !errors.Is(err, apperrors.ErrRequestNotPending) {
		t.Errorf("double accept: expected ErrRequestNotPending, got %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestRejected); !errors.Is(err, apperrors.ErrRequestNotPending) {
		t.Errorf("accept then reject: expected ErrRequestNotPending, got %v", err)
	}
}

func TestOnlyRecipientMayRespond(t *testing.T) {
	service, _, _ := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	if _, err := service.RespondToRequest(ctx, 1, request.ID, models.RequestAccepted); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("sender responding: expected ErrPermissionDenied, got %v", err)
	}
}

func TestRejectedRequestAllowsRetry(t *testing.T) {
	service, store, _ := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(store.friendships) != 0 {
		t.Fatalf("rejection must not create a friendship")
	}

	if _, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2}); err != nil {
		t.Errorf("resend after rejection: %v", err)
	}
}

func TestSendRequestBetweenFriends(t *testing.T) {
	service, _, _ := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := service.SendRequest(ctx, 2, &dto.SendFriendRequestRequest{ToUserID: 1}); !errors.Is(err, apperrors.ErrAlreadyFriends) {
		t.Errorf("expected ErrAlreadyFriends, got %v", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	service, store, hub := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	var friendshipID int64
	for id := range store.friendships {
		friendshipID = id
	}

	// A stranger may not remove the friendship.
	if err := service.RemoveFriend(ctx, 99, friendshipID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("stranger removal: expected ErrPermissionDenied, got %v", err)
	}

	if err := service.RemoveFriend(ctx, 1, friendshipID); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	if len(store.friendships) != 0 {
		t.Error("friendship still present after removal")
	}

	events := hub.events[2]
	if len(events) != 2 || events[1].Type != notify.EventFriendRemoved {
		t.Errorf("expected friend_removed event for other side, got %+v", events)
	}

	// Either side may start again.
	if _, err := service.SendRequest(ctx, 2, &dto.SendFriendRequestRequest{ToUserID: 1}); err != nil {
		t.Errorf("resend after removal: %v", err)
	}
}

func TestListFriends(t *testing.T) {
	service, _, _ := newTestFriendshipService()
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, &dto.SendFriendRequestRequest{ToUserID: 2})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := service.RespondToRequest(ctx, 2, request.ID, models.RequestAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	friends, err := service.ListFriends(ctx, 1)
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 1 {
		t.Fatalf("expected 1 friend, got %d", len(friends))
	}
	if friends[0].ID != 2 || friends[0].DisplayName != "Bob" {
		t.Errorf("unexpected friend %+v", friends[0])
	}
}
