package seed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/peiyu/classmeet/internal/app/models"
	appRepos "github.com/peiyu/classmeet/internal/app/repositories"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/auth"
)

const (
	systemEmail       = "system@classmeet.app"
	defaultSchoolName = "ClassMeet Default"
)

// CreateDefaultData creates the system user and the default school with
// its fifteen one-hour period table. Both are idempotent: reruns on an
// already seeded database do nothing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	schoolRepo := appRepos.NewSchoolRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// The default school needs an owner; a disabled system account
	// fills that role without being able to log in.
	systemUser, err := userRepo.GetByEmail(ctx, systemEmail)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking system user")
			return err
		}

		hashedPassword, err := auth.HashPassword(randomSystemPassword())
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing system user password")
			return err
		}

		systemUser = &appModels.User{
			Email:       systemEmail,
			Password:    hashedPassword,
			DisplayName: "ClassMeet",
			Settings:    appModels.DefaultSettings(),
			IsActive:    false,
		}
		id, err := userRepo.Create(ctx, systemUser)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating system user")
			return err
		}
		if id > 0 {
			systemUser.ID = id
			lgr.Info().Int64("userId", id).Msg("System user created")
		}
	}

	defaultSchool := &appModels.School{
		Name:      defaultSchoolName,
		Schedule:  appModels.SchoolSchedule{Periods: appModels.DefaultPeriods},
		CreatedBy: systemUser.ID,
	}
	schoolID, err := schoolRepo.Create(ctx, defaultSchool)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSchoolAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default school")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Int64("schoolId", schoolID).Msg("Default school created")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// randomSystemPassword generates a throwaway password. The system
// account is inactive and can never authenticate with it.
func randomSystemPassword() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
