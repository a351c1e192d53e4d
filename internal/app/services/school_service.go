package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/repositories"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/timeutil"
)

// SchoolService handles schools and their period tables.
type SchoolService struct {
	schoolRepo *repositories.SchoolRepository
	logger     zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo *repositories.SchoolRepository, logger zerolog.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		logger:     logger,
	}
}

// GetAllSchools retrieves all active schools.
func (s *SchoolService) GetAllSchools(ctx context.Context) ([]*models.School, error) {
	return s.schoolRepo.GetAll(ctx)
}

// GetSchoolByID retrieves a school by ID.
func (s *SchoolService) GetSchoolByID(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// SearchSchools finds active schools by name.
func (s *SchoolService) SearchSchools(ctx context.Context, query string, offset uint64, limit int) ([]*models.School, error) {
	return s.schoolRepo.Search(ctx, query, offset, limit)
}

// CreateSchool creates a school with its period table. An empty table
// falls back to the default fifteen one-hour periods.
func (s *SchoolService) CreateSchool(ctx context.Context, userID int64, req *dto.CreateSchoolRequest) (*models.School, error) {
	schedule := req.Schedule
	if len(schedule.Periods) == 0 {
		schedule.Periods = models.DefaultPeriods
	}

	if err := validatePeriodTable(schedule.Periods); err != nil {
		return nil, err
	}

	school := &models.School{
		Name:      strings.TrimSpace(req.Name),
		Schedule:  schedule,
		CreatedBy: userID,
	}

	id, err := s.schoolRepo.Create(ctx, school)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("schoolId", id).Str("name", school.Name).Msg("School created")

	return s.schoolRepo.GetByID(ctx, id)
}

// UpdatePeriods replaces a school's period table. Only the creator of
// the school may change it.
func (s *SchoolService) UpdatePeriods(ctx context.Context, userID, schoolID int64, req *dto.UpdatePeriodsRequest) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if school.CreatedBy != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := validatePeriodTable(req.Schedule.Periods); err != nil {
		return nil, err
	}

	if err := s.schoolRepo.UpdateSchedule(ctx, schoolID, req.Schedule); err != nil {
		return nil, err
	}

	return s.schoolRepo.GetByID(ctx, schoolID)
}

// validatePeriodTable rejects tables with unnamed or malformed periods,
// reversed ranges, out-of-order entries or overlapping slots. A valid
// table is strictly ordered by start time and pairwise disjoint.
func validatePeriodTable(periods []models.Period) error {
	if len(periods) == 0 {
		return fmt.Errorf("%w: at least one period is required", apperrors.ErrInvalidPeriodTable)
	}

	for i, period := range periods {
		if strings.TrimSpace(period.Name) == "" {
			return fmt.Errorf("%w: period %d has no name", apperrors.ErrInvalidPeriodTable, i+1)
		}
		if _, err := timeutil.DurationMinutes(period.Start, period.End); err != nil {
			return fmt.Errorf("%w: period %q: %v", apperrors.ErrInvalidPeriodTable, period.Name, err)
		}
		if i == 0 {
			continue
		}
		prev := periods[i-1]
		if period.Start < prev.Start {
			return fmt.Errorf("%w: period %q starts before %q", apperrors.ErrInvalidPeriodTable, period.Name, prev.Name)
		}
		if timeutil.Overlaps(prev.Start, prev.End, period.Start, period.End) {
			return fmt.Errorf("%w: periods %q and %q overlap", apperrors.ErrInvalidPeriodTable, prev.Name, period.Name)
		}
	}

	return nil
}
