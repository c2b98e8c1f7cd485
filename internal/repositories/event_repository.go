package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ServiceEventRepository interface {
	Create(ctx context.Context, e *models.ServiceEvent) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceEvent, error)
	// ListByDateRange returns events scheduled between from and to
	// (inclusive, YYYY-MM-DD strings), earliest first.
	ListByDateRange(ctx context.Context, from, to string) ([]*models.ServiceEvent, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.ServiceEvent, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string, followupRequired bool, followupNotes string) error
	AssignProvider(ctx context.Context, id uuid.UUID, providerID *uuid.UUID) error
	// TouchReminder records that a reminder was dispatched for the event.
	TouchReminder(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FulfilmentCountsForYear counts a service's completed and scheduled
	// events whose date falls in the given year ("2026").
	FulfilmentCountsForYear(ctx context.Context, serviceID uuid.UUID, year string) (completed, scheduled int, err error)
	CountOverdue(ctx context.Context, today string) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type serviceEventRepo struct {
	db DB
}

func NewServiceEventRepository(db DB) ServiceEventRepository {
	return &serviceEventRepo{db: db}
}

func (r *serviceEventRepo) Create(ctx context.Context, e *models.ServiceEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	var lastReminder any
	if e.LastReminderAt != nil {
		lastReminder = formatTime(*e.LastReminderAt)
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO service_events (
            id, property_id, service_id, provider_id, service_category,
            scheduled_date, status, followup_required, followup_notes,
            last_reminder_at, created_at
        ) VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `,
		e.ID, e.PropertyID, nullUUID(e.ServiceID), nullUUID(e.ProviderID),
		e.ServiceCategory, e.ScheduledDate, e.Status,
		e.FollowupRequired, e.FollowupNotes, lastReminder, formatTime(e.CreatedAt),
	)
	return err
}

func (r *serviceEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceEvent, error) {
	return scanServiceEvent(r.db.QueryRowContext(ctx, baseSelectServiceEvent()+" WHERE e.id=?", id))
}

func (r *serviceEventRepo) ListByDateRange(ctx context.Context, from, to string) ([]*models.ServiceEvent, error) {
	return r.list(ctx,
		baseSelectServiceEvent()+" WHERE e.scheduled_date >= ? AND e.scheduled_date <= ? ORDER BY e.scheduled_date, p.name",
		from, to)
}

func (r *serviceEventRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.ServiceEvent, error) {
	return r.list(ctx,
		baseSelectServiceEvent()+" WHERE e.property_id=? ORDER BY e.scheduled_date",
		propertyID)
}

func (r *serviceEventRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, followupRequired bool, followupNotes string) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE service_events SET status=?, followup_required=?, followup_notes=? WHERE id=?
    `, status, followupRequired, followupNotes, id)
	return err
}

func (r *serviceEventRepo) AssignProvider(ctx context.Context, id uuid.UUID, providerID *uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE service_events SET provider_id=? WHERE id=?
    `, nullUUID(providerID), id)
	return err
}

func (r *serviceEventRepo) TouchReminder(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE service_events SET last_reminder_at=? WHERE id=?
    `, formatTime(time.Now().UTC()), id)
	return err
}

func (r *serviceEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_events WHERE id=?`, id)
	return err
}

func (r *serviceEventRepo) FulfilmentCountsForYear(ctx context.Context, serviceID uuid.UUID, year string) (int, int, error) {
	var completed, scheduled int
	err := r.db.QueryRowContext(ctx, `
        SELECT
            COALESCE(SUM(CASE WHEN status='Completed' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status='Scheduled' THEN 1 ELSE 0 END), 0)
        FROM service_events
        WHERE service_id=? AND scheduled_date LIKE ?
    `, serviceID, year+"-%").Scan(&completed, &scheduled)
	return completed, scheduled, err
}

func (r *serviceEventRepo) CountOverdue(ctx context.Context, today string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM service_events
        WHERE status='Scheduled' AND scheduled_date < ?
    `, today).Scan(&n)
	return n, err
}

func (r *serviceEventRepo) list(ctx context.Context, query string, args ...any) ([]*models.ServiceEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ServiceEvent
	for rows.Next() {
		e, err := scanServiceEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func baseSelectServiceEvent() string {
	return `
        SELECT
            e.id, e.property_id, e.service_id, e.provider_id, e.service_category,
            e.scheduled_date, e.status, e.followup_required, e.followup_notes,
            e.last_reminder_at, e.created_at,
            p.name, COALESCE(sp.full_name, ''), COALESCE(sp.email, ''), COALESCE(sp.phone, '')
        FROM service_events e
        JOIN properties p ON p.id = e.property_id
        LEFT JOIN service_persons sp ON sp.id = e.provider_id
    `
}

func scanServiceEvent(row row) (*models.ServiceEvent, error) {
	var (
		e            models.ServiceEvent
		serviceID    uuid.NullUUID
		providerID   uuid.NullUUID
		lastReminder sql.NullString
		createdAt    string
	)
	err := row.Scan(
		&e.ID, &e.PropertyID, &serviceID, &providerID, &e.ServiceCategory,
		&e.ScheduledDate, &e.Status, &e.FollowupRequired, &e.FollowupNotes,
		&lastReminder, &createdAt,
		&e.PropertyName, &e.ProviderName, &e.ProviderEmail, &e.ProviderPhone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.ServiceID = uuidPtr(serviceID)
	e.ProviderID = uuidPtr(providerID)
	e.LastReminderAt = timePtr(lastReminder)
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}
