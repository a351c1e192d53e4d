package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/notify"
)

// friendshipStore is the storage surface the friendship service needs.
// *repositories.FriendshipRepository satisfies it.
type friendshipStore interface {
	CreateRequest(ctx context.Context, request *models.FriendRequest) (int64, error)
	GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	ListIncomingPending(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	RespondRequest(ctx context.Context, request *models.FriendRequest, status models.RequestStatus) (int64, error)
	ListFriendships(ctx context.Context, userID int64) ([]*models.Friendship, error)
	GetFriendshipByID(ctx context.Context, id int64) (*models.Friendship, error)
	DeleteFriendship(ctx context.Context, id int64) error
}

// userStore is the slice of the user repository the friendship service
// needs to resolve counterparties.
type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// notifier delivers friend-system events to connected users.
// *notify.Hub satisfies it.
type notifier interface {
	Notify(userID int64, event *notify.Event)
}

// FriendshipService handles friend requests and friendships.
type FriendshipService struct {
	friendshipRepo friendshipStore
	userRepo       userStore
	hub            notifier
	logger         zerolog.Logger
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(
	friendshipRepo friendshipStore,
	userRepo userStore,
	hub notifier,
	logger zerolog.Logger,
) *FriendshipService {
	return &FriendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		hub:            hub,
		logger:         logger,
	}
}

// SendRequest creates a pending friend request from fromUserID. The
// self-request check runs before any existence check, so sending to
// oneself always fails the same way regardless of state.
func (s *FriendshipService) SendRequest(ctx context.Context, fromUserID int64, req *dto.SendFriendRequestRequest) (*models.FriendRequest, error) {
	if fromUserID == req.ToUserID {
		return nil, apperrors.ErrSelfFriendRequest
	}

	recipient, err := s.userRepo.GetByID(ctx, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if !recipient.IsActive {
		return nil, apperrors.ErrUserNotFound
	}

	request := &models.FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Message:    req.Message,
		Status:     models.RequestPending,
	}

	id, err := s.friendshipRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = id
	request.CreatedAt = time.Now()

	s.logger.Info().Int64("requestId", id).
		Int64("from", fromUserID).
		Int64("to", req.ToUserID).
		Msg("Friend request sent")

	s.hub.Notify(req.ToUserID, &notify.Event{
		Type:       notify.EventFriendRequest,
		FromUserID: fromUserID,
		Message:    req.Message,
		Timestamp:  time.Now(),
	})

	return request, nil
}

// ListIncomingRequests retrieves the caller's pending incoming requests.
func (s *FriendshipService) ListIncomingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return s.friendshipRepo.ListIncomingPending(ctx, userID)
}

// RespondToRequest accepts or rejects a pending request. Only the
// recipient may respond, and only once: both outcomes are terminal.
func (s *FriendshipService) RespondToRequest(ctx context.Context, userID, requestID int64, status models.RequestStatus) (*models.FriendRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", apperrors.ErrValidationFailed)
	}

	request, err := s.friendshipRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.ErrRequestNotPending
	}

	if _, err := s.friendshipRepo.RespondRequest(ctx, request, status); err != nil {
		return nil, err
	}

	request.Status = status
	now := time.Now()
	request.RespondedAt = &now

	eventType := notify.EventRequestAccepted
	if status == models.RequestRejected {
		eventType = notify.EventRequestRejected
	}
	s.hub.Notify(request.FromUserID, &notify.Event{
		Type:       eventType,
		FromUserID: userID,
		Timestamp:  now,
	})

	s.logger.Info().Int64("requestId", requestID).
		Str("status", string(status)).
		Msg("Friend request answered")

	return request, nil
}

// ListFriends retrieves the caller's friends with their friendship IDs.
func (s *FriendshipService) ListFriends(ctx context.Context, userID int64) ([]*dto.FriendResponse, error) {
	friendships, err := s.friendshipRepo.ListFriendships(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]*dto.FriendResponse, 0, len(friendships))
	for _, friendship := range friendships {
		otherID := friendship.OtherUser(userID)
		other, err := s.userRepo.GetByID(ctx, otherID)
		if err != nil {
			return nil, err
		}
		friends = append(friends, &dto.FriendResponse{
			ID:           other.ID,
			DisplayName:  other.DisplayName,
			SchoolID:     other.SchoolID,
			PhotoURL:     other.PhotoURL,
			FriendshipID: friendship.ID,
		})
	}
	return friends, nil
}

// RemoveFriend deletes a friendship the caller belongs to. After
// removal either side may send a fresh request.
func (s *FriendshipService) RemoveFriend(ctx context.Context, userID, friendshipID int64) error {
	friendship, err := s.friendshipRepo.GetFriendshipByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.UserAID != userID && friendship.UserBID != userID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.friendshipRepo.DeleteFriendship(ctx, friendshipID); err != nil {
		return err
	}

	s.hub.Notify(friendship.OtherUser(userID), &notify.Event{
		Type:       notify.EventFriendRemoved,
		FromUserID: userID,
		Timestamp:  time.Now(),
	})

	return nil
}
