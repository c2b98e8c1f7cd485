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

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
	// ListAll returns every ticket, newest first. When statusFilter is
	// non-empty only tickets in that status are returned.
	ListAll(ctx context.Context, statusFilter string) ([]*models.Ticket, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Ticket, error)

	Update(ctx context.Context, id uuid.UUID, status, priority, adminComment string) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountOpen(ctx context.Context) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type ticketRepo struct {
	db DB
}

func NewTicketRepository(db DB) TicketRepository {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) Create(ctx context.Context, t *models.Ticket) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO tickets (
            id, property_id, owner_id, title, description, status, priority,
            admin_comment, created_at, updated_at
        ) VALUES (?,?,?,?,?,?,?,?,?,?)
    `,
		t.ID, t.PropertyID, t.OwnerID, t.Title, t.Description,
		t.Status, t.Priority, t.AdminComment,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	return err
}

func (r *ticketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	return scanTicket(r.db.QueryRowContext(ctx, baseSelectTicket()+" WHERE t.id=?", id))
}

func (r *ticketRepo) ListAll(ctx context.Context, statusFilter string) ([]*models.Ticket, error) {
	if statusFilter != "" {
		return r.list(ctx, baseSelectTicket()+" WHERE t.status=? ORDER BY t.created_at DESC", statusFilter)
	}
	return r.list(ctx, baseSelectTicket()+" ORDER BY t.created_at DESC")
}

func (r *ticketRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Ticket, error) {
	return r.list(ctx, baseSelectTicket()+" WHERE t.owner_id=? ORDER BY t.created_at DESC", ownerID)
}

func (r *ticketRepo) Update(ctx context.Context, id uuid.UUID, status, priority, adminComment string) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE tickets SET status=?, priority=?, admin_comment=?, updated_at=? WHERE id=?
    `, status, priority, adminComment, formatTime(time.Now().UTC()), id)
	return err
}

func (r *ticketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id=?`, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return utils.ErrHasDependents
	}
	return err
}

func (r *ticketRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE status != 'Closed'`).Scan(&n)
	return n, err
}

func (r *ticketRepo) list(ctx context.Context, query string, args ...any) ([]*models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func baseSelectTicket() string {
	return `
        SELECT
            t.id, t.property_id, t.owner_id, t.title, t.description,
            t.status, t.priority, t.admin_comment, t.created_at, t.updated_at,
            p.name, u.username
        FROM tickets t
        JOIN properties p ON p.id = t.property_id
        JOIN users u ON u.id = t.owner_id
    `
}

func scanTicket(row row) (*models.Ticket, error) {
	var (
		t         models.Ticket
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&t.ID, &t.PropertyID, &t.OwnerID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.AdminComment, &createdAt, &updatedAt,
		&t.PropertyName, &t.OwnerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}
