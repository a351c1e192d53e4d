package models

import "time"

// RequestStatus is the lifecycle state of a friend request. A request
// must be pending to transition; accepted and rejected are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest defines the friend request model based on the
// 'friend_requests' table.
type FriendRequest struct {
	ID          int64         `json:"id" db:"id"`
	FromUserID  int64         `json:"fromUserId" db:"from_user_id"`
	ToUserID    int64         `json:"toUserId" db:"to_user_id"`
	Message     string        `json:"message" db:"message"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`

	// Related entities
	FromUser *User `json:"fromUser,omitempty"`
}

// Friendship is a symmetric accepted relationship between two users.
// The pair is stored in canonical order (UserAID < UserBID) and a
// unique index on the pair guarantees at most one active friendship
// per unordered pair.
type Friendship struct {
	ID        int64     `json:"id" db:"id"`
	UserAID   int64     `json:"-" db:"user_a_id"`
	UserBID   int64     `json:"-" db:"user_b_id"`
	Users     []int64   `json:"users"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CanonicalPair orders two user IDs for storage in a friendship row.
func CanonicalPair(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// OtherUser returns the member of the friendship that is not userID.
func (f *Friendship) OtherUser(userID int64) int64 {
	if f.UserAID == userID {
		return f.UserBID
	}
	return f.UserAID
}
