package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/repositories"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/freetime"
	"github.com/peiyu/classmeet/internal/pkg/timeutil"
)

// batchConcurrency caps parallel schedule fetches in a batch query.
const batchConcurrency = 8

// ScheduleService handles weekly schedules and common-free-time queries.
type ScheduleService struct {
	scheduleRepo   *repositories.ScheduleRepository
	schoolRepo     *repositories.SchoolRepository
	userRepo       *repositories.UserRepository
	friendshipRepo *repositories.FriendshipRepository
	logger         zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	scheduleRepo *repositories.ScheduleRepository,
	schoolRepo *repositories.SchoolRepository,
	userRepo *repositories.UserRepository,
	friendshipRepo *repositories.FriendshipRepository,
	logger zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:   scheduleRepo,
		schoolRepo:     schoolRepo,
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		logger:         logger,
	}
}

// GetOwnSchedule retrieves the caller's schedule. Users that have never
// written one get the empty schedule, not an error.
func (s *ScheduleService) GetOwnSchedule(ctx context.Context, userID int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return models.EmptySchedule(userID), nil
		}
		return nil, err
	}
	return schedule, nil
}

// GetScheduleForViewer retrieves another user's schedule subject to
// that user's privacy setting: private denies everyone, friends
// requires an active friendship, public allows any authenticated user.
// Owners always see their own schedule. When the owner hides course
// names, non-owner viewers get the slots with the names blanked.
func (s *ScheduleService) GetScheduleForViewer(ctx context.Context, viewerID, ownerID int64) (*models.Schedule, error) {
	if viewerID == ownerID {
		return s.GetOwnSchedule(ctx, ownerID)
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	switch owner.Settings.Privacy {
	case models.PrivacyPublic:
	case models.PrivacyFriends:
		friends, err := s.friendshipRepo.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, apperrors.ErrPermissionDenied
		}
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	schedule, err := s.GetOwnSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if !owner.Settings.ShowCourseNames {
		redacted := *schedule
		redacted.Courses = make([]models.Course, len(schedule.Courses))
		for i, course := range schedule.Courses {
			course.Name = ""
			redacted.Courses[i] = course
		}
		return &redacted, nil
	}

	return schedule, nil
}

// UpdateSchedule validates and overwrites the caller's full schedule.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, userID int64, req *dto.UpdateScheduleRequest) (*models.Schedule, error) {
	courses := req.Courses
	if courses == nil {
		courses = []models.Course{}
	}
	busyTimes := req.BusyTimes
	if busyTimes == nil {
		busyTimes = []models.BusyTime{}
	}

	for i := range courses {
		if err := validateEntry(courses[i].Name, courses[i].Day, courses[i].StartTime, courses[i].EndTime); err != nil {
			return nil, err
		}
		if courses[i].ID == "" {
			courses[i].ID = uuid.NewString()
		}
	}
	for i := range busyTimes {
		if err := validateEntry(busyTimes[i].Name, busyTimes[i].Day, busyTimes[i].StartTime, busyTimes[i].EndTime); err != nil {
			return nil, err
		}
		if !isValidBusyType(busyTimes[i].Type) {
			return nil, fmt.Errorf("%w: unknown busy time type %q", apperrors.ErrValidationFailed, busyTimes[i].Type)
		}
		if busyTimes[i].ID == "" {
			busyTimes[i].ID = uuid.NewString()
		}
	}

	schedule := &models.Schedule{
		UserID:    userID,
		Courses:   courses,
		BusyTimes: busyTimes,
	}
	if err := s.scheduleRepo.Upsert(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", userID).
		Int("courses", len(courses)).
		Int("busyTimes", len(busyTimes)).
		Msg("Schedule updated")

	return s.scheduleRepo.GetByUserID(ctx, userID)
}

// DeleteSchedule clears the caller's schedule.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, userID int64) error {
	return s.scheduleRepo.Delete(ctx, userID)
}

// GetBatchSchedules fetches several users' schedules concurrently.
// Every requested user other than the caller must be a friend of the
// caller. Users without a stored schedule contribute the empty one.
func (s *ScheduleService) GetBatchSchedules(ctx context.Context, callerID int64, userIDs []int64) (map[int64]*models.Schedule, error) {
	if err := s.checkGroupAccess(ctx, callerID, userIDs); err != nil {
		return nil, err
	}

	schedules := make(map[int64]*models.Schedule, len(userIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			schedule, err := s.GetOwnSchedule(gctx, userID)
			if err != nil {
				return err
			}
			mu.Lock()
			schedules[userID] = schedule
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// GetCommonFreeTime computes the periods in a school's table during
// which every listed user is free. The caller is always included.
func (s *ScheduleService) GetCommonFreeTime(ctx context.Context, callerID int64, req *dto.CommonFreeRequest) (*dto.CommonFreeResponse, error) {
	userIDs := req.UserIDs
	if !containsID(userIDs, callerID) {
		userIDs = append([]int64{callerID}, userIDs...)
	}

	school, err := s.schoolRepo.GetByID(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.GetBatchSchedules(ctx, callerID, userIDs)
	if err != nil {
		return nil, err
	}

	report := freetime.CommonFree(schedules, school.Schedule.Periods)

	return &dto.CommonFreeResponse{
		CommonFreeTimes: report,
		SchoolSchedule:  school.Schedule,
		Participants:    len(schedules),
	}, nil
}

// checkGroupAccess verifies every non-caller member of userIDs shares a
// friendship with the caller.
func (s *ScheduleService) checkGroupAccess(ctx context.Context, callerID int64, userIDs []int64) error {
	for _, userID := range userIDs {
		if userID == callerID {
			continue
		}
		friends, err := s.friendshipRepo.AreFriends(ctx, callerID, userID)
		if err != nil {
			return err
		}
		if !friends {
			return apperrors.ErrPermissionDenied
		}
	}
	return nil
}

func validateEntry(name string, day models.Day, start, end string) error {
	if name == "" {
		return fmt.Errorf("%w: entry name is required", apperrors.ErrValidationFailed)
	}
	if !models.IsValidDay(day) {
		return fmt.Errorf("%w: unknown day %q", apperrors.ErrValidationFailed, day)
	}
	if _, err := timeutil.DurationMinutes(start, end); err != nil {
		return fmt.Errorf("%w: %q: %v", apperrors.ErrValidationFailed, name, err)
	}
	return nil
}

func isValidBusyType(t models.BusyTimeType) bool {
	switch t {
	case models.BusyWork, models.BusyStudy, models.BusyOther:
		return true
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
