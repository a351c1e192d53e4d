package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
	"github.com/peiyu/classmeet/internal/pkg/dberrors"
)

// SchoolRepository handles database operations for schools
type SchoolRepository struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: db}
}

const schoolColumns = `id, name, schedule, created_by, is_active, created_at, updated_at`

func scanSchool(row pgx.Row) (*models.School, error) {
	var school models.School
	err := row.Scan(
		&school.ID,
		&school.Name,
		&school.Schedule,
		&school.CreatedBy,
		&school.IsActive,
		&school.CreatedAt,
		&school.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &school, nil
}

// GetAll retrieves all active schools
func (r *SchoolRepository) GetAll(ctx context.Context) ([]*models.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE is_active ORDER BY name`, schoolColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return collectSchools(rows)
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE id = $1`, schoolColumns)
	return scanSchool(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new school. The unique index on the school name is
// the conflict check: two racing creators cannot both succeed.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) (int64, error) {
	query := `
		INSERT INTO schools (name, schedule, created_by)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, school.Name, school.Schedule, school.CreatedBy).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schools_name_key") {
			return 0, apperrors.ErrSchoolAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// UpdateSchedule replaces a school's period table.
func (r *SchoolRepository) UpdateSchedule(ctx context.Context, id int64, schedule models.SchoolSchedule) error {
	result, err := r.db.Exec(ctx,
		`UPDATE schools SET schedule = $1, updated_at = NOW() WHERE id = $2`,
		schedule, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// Search finds active schools whose name matches the query.
func (r *SchoolRepository) Search(ctx context.Context, query string, offset uint64, limit int) ([]*models.School, error) {
	builder := squirrel.Select("id", "name", "schedule", "created_by", "is_active", "created_at", "updated_at").
		From("schools").
		Where("name ILIKE ?", "%"+query+"%").
		Where("is_active").
		OrderBy("name").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return collectSchools(rows)
}

func collectSchools(rows pgx.Rows) ([]*models.School, error) {
	schools := []*models.School{}
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, school)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return schools, nil
}
