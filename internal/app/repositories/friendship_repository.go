package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/db"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/dberrors"
)

// FriendshipRepository handles database operations for friend requests
// and friendships. State transitions run inside transactions so that
// concurrent requests between the same pair cannot produce duplicate
// pending requests or duplicate friendships.
type FriendshipRepository struct {
	db *db.PostgresDB
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(database *db.PostgresDB) *FriendshipRepository {
	return &FriendshipRepository{db: database}
}

// CreateRequest inserts a pending friend request after verifying the
// pair is neither already linked nor already awaiting a response in
// either direction. The partial unique index on pending pairs backs up
// the in-transaction check under concurrency.
func (r *FriendshipRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) (int64, error) {
	var id int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userA, userB := models.CanonicalPair(request.FromUserID, request.ToUserID)

		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a_id = $1 AND user_b_id = $2)`,
			userA, userB).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if exists {
			return apperrors.ErrAlreadyFriends
		}

		err = tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM friend_requests
				WHERE status = 'pending'
				  AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
			)`,
			request.FromUserID, request.ToUserID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if exists {
			return apperrors.ErrRequestAlreadySent
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO friend_requests (from_user_id, to_user_id, message, status)
			 VALUES ($1, $2, $3, 'pending')
			 RETURNING id`,
			request.FromUserID, request.ToUserID, request.Message).Scan(&id)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrRequestAlreadySent
			}
			return fmt.Errorf("error executing query: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetRequestByID retrieves a friend request by ID.
func (r *FriendshipRepository) GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	query := `
		SELECT id, from_user_id, to_user_id, message, status, created_at, responded_at
		FROM friend_requests
		WHERE id = $1
	`

	var request models.FriendRequest
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.FromUserID,
		&request.ToUserID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&request.RespondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &request, nil
}

// ListIncomingPending retrieves the pending requests addressed to a
// user, newest first, with the sender joined in for display.
func (r *FriendshipRepository) ListIncomingPending(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	query := `
		SELECT r.id, r.from_user_id, r.to_user_id, r.message, r.status, r.created_at, r.responded_at,
		       u.id, u.email, u.display_name, u.school_id, u.photo_url
		FROM friend_requests r
		JOIN users u ON u.id = r.from_user_id
		WHERE r.to_user_id = $1 AND r.status = 'pending'
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	requests := []*models.FriendRequest{}
	for rows.Next() {
		var request models.FriendRequest
		var from models.User
		err := rows.Scan(
			&request.ID,
			&request.FromUserID,
			&request.ToUserID,
			&request.Message,
			&request.Status,
			&request.CreatedAt,
			&request.RespondedAt,
			&from.ID,
			&from.Email,
			&from.DisplayName,
			&from.SchoolID,
			&from.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		request.FromUser = &from
		requests = append(requests, &request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

// RespondRequest transitions a pending request to accepted or rejected.
// The UPDATE is guarded on the pending status so a request that was
// already answered, concurrently or not, leaves zero rows affected and
// the transition fails with ErrRequestNotPending. Acceptance inserts
// the friendship row in the same transaction.
func (r *FriendshipRepository) RespondRequest(ctx context.Context, request *models.FriendRequest, status models.RequestStatus) (int64, error) {
	var friendshipID int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE friend_requests
			 SET status = $1, responded_at = NOW()
			 WHERE id = $2 AND status = 'pending'`,
			status, request.ID)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrRequestNotPending
		}

		if status != models.RequestAccepted {
			return nil
		}

		userA, userB := models.CanonicalPair(request.FromUserID, request.ToUserID)
		err = tx.QueryRow(ctx,
			`INSERT INTO friendships (user_a_id, user_b_id, status)
			 VALUES ($1, $2, 'active')
			 RETURNING id`,
			userA, userB).Scan(&friendshipID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "friendships_pair_key") {
				return apperrors.ErrAlreadyFriends
			}
			return fmt.Errorf("error executing query: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return friendshipID, nil
}

// ListFriendships retrieves all friendships a user belongs to.
func (r *FriendshipRepository) ListFriendships(ctx context.Context, userID int64) ([]*models.Friendship, error) {
	query := `
		SELECT id, user_a_id, user_b_id, status, created_at
		FROM friendships
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	friendships := []*models.Friendship{}
	for rows.Next() {
		friendship, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		friendships = append(friendships, friendship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return friendships, nil
}

// GetFriendshipByID retrieves a friendship by ID.
func (r *FriendshipRepository) GetFriendshipByID(ctx context.Context, id int64) (*models.Friendship, error) {
	query := `
		SELECT id, user_a_id, user_b_id, status, created_at
		FROM friendships
		WHERE id = $1
	`
	return scanFriendship(r.db.Pool.QueryRow(ctx, query, id))
}

// AreFriends reports whether two users share an active friendship.
func (r *FriendshipRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	userA, userB := models.CanonicalPair(userID, otherID)

	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a_id = $1 AND user_b_id = $2)`,
		userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// DeleteFriendship removes a friendship row. After deletion either
// side may send a fresh friend request.
func (r *FriendshipRepository) DeleteFriendship(ctx context.Context, id int64) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

func scanFriendship(row pgx.Row) (*models.Friendship, error) {
	var friendship models.Friendship
	err := row.Scan(
		&friendship.ID,
		&friendship.UserAID,
		&friendship.UserBID,
		&friendship.Status,
		&friendship.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	friendship.Users = []int64{friendship.UserAID, friendship.UserBID}
	return &friendship, nil
}
