package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/repositories"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/auth"
)

// AuthService handles registration, login and profile operations.
type AuthService struct {
	userRepo   *repositories.UserRepository
	schoolRepo *repositories.SchoolRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	schoolRepo *repositories.SchoolRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		schoolRepo: schoolRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidationFailed)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", apperrors.ErrValidationFailed)
	}

	return nil
}

// Register creates a new user account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	if req.SchoolID != nil {
		if _, err := s.schoolRepo.GetByID(ctx, *req.SchoolID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       email,
		Password:    hashedPassword,
		DisplayName: strings.TrimSpace(req.DisplayName),
		SchoolID:    req.SchoolID,
		Settings:    models.DefaultSettings(),
		IsActive:    true,
	}
	if req.PhotoURL != "" {
		user.PhotoURL = &req.PhotoURL
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("userId", id).Msg("User registered")

	return s.issueTokens(user)
}

// Login verifies credentials and issues a token pair. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record login time")
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(user)
}

// GetProfile retrieves the profile of a user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of req to a user's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.DisplayName == nil && req.SchoolID == nil && req.Settings == nil {
		return s.userRepo.GetByID(ctx, userID)
	}

	if req.SchoolID != nil {
		if _, err := s.schoolRepo.GetByID(ctx, *req.SchoolID); err != nil {
			return nil, err
		}
	}

	if req.Settings != nil && !isValidPrivacy(req.Settings.Privacy) {
		return nil, fmt.Errorf("%w: unknown privacy level %q", apperrors.ErrValidationFailed, req.Settings.Privacy)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.DisplayName, req.SchoolID, req.Settings); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// SearchUsers finds users by display name, excluding the searcher.
func (s *AuthService) SearchUsers(ctx context.Context, query string, userID int64, offset uint64, limit int) ([]*dto.UserSearchResponse, error) {
	users, err := s.userRepo.Search(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.UserSearchResponse, 0, len(users))
	for _, user := range users {
		results = append(results, &dto.UserSearchResponse{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			SchoolID:    user.SchoolID,
			PhotoURL:    user.PhotoURL,
		})
	}
	return results, nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

func isValidPrivacy(p models.Privacy) bool {
	switch p {
	case models.PrivacyPrivate, models.PrivacyFriends, models.PrivacyPublic:
		return true
	}
	return false
}
