package dto

import "github.com/peiyu/classmeet/internal/app/models"

// SendFriendRequestRequest is the payload for sending a friend request
type SendFriendRequestRequest struct {
	ToUserID int64  `json:"toUserId" binding:"required"`
	Message  string `json:"message,omitempty" binding:"max=500"`
}

// RespondFriendRequestRequest is the payload for accepting or
// rejecting a pending friend request.
type RespondFriendRequestRequest struct {
	Status models.RequestStatus `json:"status" binding:"required,oneof=accepted rejected"`
}

// FriendResponse is one entry in a user's friend list
type FriendResponse struct {
	ID           int64   `json:"id"`
	DisplayName  string  `json:"displayName"`
	SchoolID     *int64  `json:"schoolId,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
	FriendshipID int64   `json:"friendshipId"`
}

// UserSearchResponse is one entry in a user search result
type UserSearchResponse struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"displayName"`
	SchoolID    *int64  `json:"schoolId,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}
