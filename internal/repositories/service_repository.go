package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyServiceRepository interface {
	Create(ctx context.Context, s *models.PropertyService) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyService, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyService, error)
	ListAllWithProperty(ctx context.Context) ([]*models.PropertyService, error)

	Update(ctx context.Context, s *models.PropertyService) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FrequencySummary returns total visits per year grouped by frequency
	// label across all properties, largest first.
	FrequencySummary(ctx context.Context) ([]models.FrequencyCount, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyServiceRepo struct {
	db DB
}

func NewPropertyServiceRepository(db DB) PropertyServiceRepository {
	return &propertyServiceRepo{db: db}
}

func (r *propertyServiceRepo) Create(ctx context.Context, s *models.PropertyService) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO property_services (
            id, property_id, category, frequency, times_per_year, each_time_cost,
            status, start_date, end_date, notes, updated_by, created_at
        ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
    `,
		s.ID,
		s.PropertyID,
		s.Category,
		s.Frequency,
		s.TimesPerYear,
		s.EachTimeCost,
		s.Status,
		s.StartDate,
		s.EndDate,
		s.Notes,
		s.UpdatedBy,
		formatTime(s.CreatedAt),
	)
	return err
}

func (r *propertyServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyService, error) {
	return scanPropertyService(r.db.QueryRowContext(ctx, baseSelectPropertyService()+" WHERE s.id=?", id))
}

func (r *propertyServiceRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyService, error) {
	return r.list(ctx, baseSelectPropertyService()+" WHERE s.property_id=? ORDER BY s.category", propertyID)
}

func (r *propertyServiceRepo) ListAllWithProperty(ctx context.Context) ([]*models.PropertyService, error) {
	return r.list(ctx, baseSelectPropertyService()+" ORDER BY p.name, s.category")
}

func (r *propertyServiceRepo) Update(ctx context.Context, s *models.PropertyService) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE property_services SET
            category=?, frequency=?, times_per_year=?, each_time_cost=?,
            start_date=?, end_date=?, notes=?, updated_by=?
        WHERE id=?
    `,
		s.Category, s.Frequency, s.TimesPerYear, s.EachTimeCost,
		s.StartDate, s.EndDate, s.Notes, s.UpdatedBy, s.ID,
	)
	return err
}

func (r *propertyServiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE property_services SET status=?, updated_by=? WHERE id=?
    `, status, updatedBy, id)
	return err
}

func (r *propertyServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM property_services WHERE id=?`, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return utils.ErrHasDependents
	}
	return err
}

func (r *propertyServiceRepo) FrequencySummary(ctx context.Context) ([]models.FrequencyCount, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT frequency, COALESCE(SUM(times_per_year), 0) AS visits
        FROM property_services
        GROUP BY frequency ORDER BY visits DESC, frequency
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FrequencyCount
	for rows.Next() {
		var fc models.FrequencyCount
		if err := rows.Scan(&fc.Frequency, &fc.Count); err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, rows.Err()
}

func (r *propertyServiceRepo) list(ctx context.Context, query string, args ...any) ([]*models.PropertyService, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyService
	for rows.Next() {
		s, err := scanPropertyService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func baseSelectPropertyService() string {
	return `
        SELECT
            s.id, s.property_id, s.category, s.frequency, s.times_per_year,
            s.each_time_cost, s.status, s.start_date, s.end_date,
            s.notes, s.updated_by, s.created_at, p.name
        FROM property_services s
        JOIN properties p ON p.id = s.property_id
    `
}

func scanPropertyService(row row) (*models.PropertyService, error) {
	var (
		s         models.PropertyService
		startDate sql.NullString
		endDate   sql.NullString
		createdAt string
	)
	err := row.Scan(
		&s.ID,
		&s.PropertyID,
		&s.Category,
		&s.Frequency,
		&s.TimesPerYear,
		&s.EachTimeCost,
		&s.Status,
		&startDate,
		&endDate,
		&s.Notes,
		&s.UpdatedBy,
		&createdAt,
		&s.PropertyName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.StartDate = strPtr(startDate)
	s.EndDate = strPtr(endDate)
	s.CreatedAt = parseTime(createdAt)
	return &s, nil
}
