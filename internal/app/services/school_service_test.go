package services

import (
	"errors"
	"testing"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
)

func TestValidatePeriodTable(t *testing.T) {
	tests := []struct {
		name    string
		periods []models.Period
		wantErr bool
	}{
		{
			name:    "default table",
			periods: models.DefaultPeriods,
		},
		{
			name: "adjacent periods may touch",
			periods: []models.Period{
				{Name: "Period 1", Start: "08:00", End: "09:00"},
				{Name: "Period 2", Start: "09:00", End: "10:00"},
			},
		},
		{
			name: "gaps between periods are allowed",
			periods: []models.Period{
				{Name: "Morning", Start: "08:00", End: "10:00"},
				{Name: "Afternoon", Start: "13:00", End: "15:00"},
			},
		},
		{
			name:    "empty table",
			periods: []models.Period{},
			wantErr: true,
		},
		{
			name: "unnamed period",
			periods: []models.Period{
				{Name: " ", Start: "08:00", End: "09:00"},
			},
			wantErr: true,
		},
		{
			name: "reversed range",
			periods: []models.Period{
				{Name: "Period 1", Start: "09:00", End: "08:00"},
			},
			wantErr: true,
		},
		{
			name: "malformed clock",
			periods: []models.Period{
				{Name: "Period 1", Start: "8:00", End: "09:00"},
			},
			wantErr: true,
		},
		{
			name: "out of order",
			periods: []models.Period{
				{Name: "Period 2", Start: "09:00", End: "10:00"},
				{Name: "Period 1", Start: "08:00", End: "09:00"},
			},
			wantErr: true,
		},
		{
			name: "overlapping periods",
			periods: []models.Period{
				{Name: "Period 1", Start: "08:00", End: "09:30"},
				{Name: "Period 2", Start: "09:00", End: "10:00"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePeriodTable(tt.periods)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidPeriodTable) {
					t.Fatalf("expected ErrInvalidPeriodTable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
