package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/* ------------------------------------------------------------------
   Public interfaces
------------------------------------------------------------------ */

type ServiceAttachmentRepository interface {
	Create(ctx context.Context, a *models.ServiceAttachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceAttachment, error)
	ListByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*models.ServiceAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TicketAttachmentRepository interface {
	Create(ctx context.Context, a *models.TicketAttachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TicketAttachment, error)
	ListByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*models.TicketAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Service attachments
------------------------------------------------------------------ */

type serviceAttachmentRepo struct {
	db DB
}

func NewServiceAttachmentRepository(db DB) ServiceAttachmentRepository {
	return &serviceAttachmentRepo{db: db}
}

func (r *serviceAttachmentRepo) Create(ctx context.Context, a *models.ServiceAttachment) error {
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO service_attachments (
            id, service_id, file_name, file_path, content_type, size_bytes, uploaded_by, uploaded_at
        ) VALUES (?,?,?,?,?,?,?,?)
    `,
		a.ID, a.ServiceID, a.FileName, a.FilePath,
		a.ContentType, a.SizeBytes, a.UploadedBy, formatTime(a.UploadedAt),
	)
	return err
}

func (r *serviceAttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceAttachment, error) {
	return scanServiceAttachment(r.db.QueryRowContext(ctx,
		baseSelectServiceAttachment()+" WHERE id=?", id))
}

func (r *serviceAttachmentRepo) ListByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*models.ServiceAttachment, error) {
	rows, err := r.db.QueryContext(ctx,
		baseSelectServiceAttachment()+" WHERE service_id=? ORDER BY uploaded_at DESC", serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ServiceAttachment
	for rows.Next() {
		a, err := scanServiceAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *serviceAttachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_attachments WHERE id=?`, id)
	return err
}

func baseSelectServiceAttachment() string {
	return `
        SELECT id, service_id, file_name, file_path, content_type, size_bytes, uploaded_by, uploaded_at
        FROM service_attachments
    `
}

func scanServiceAttachment(row row) (*models.ServiceAttachment, error) {
	var (
		a          models.ServiceAttachment
		uploadedAt string
	)
	err := row.Scan(
		&a.ID, &a.ServiceID, &a.FileName, &a.FilePath,
		&a.ContentType, &a.SizeBytes, &a.UploadedBy, &uploadedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.UploadedAt = parseTime(uploadedAt)
	return &a, nil
}

/* ------------------------------------------------------------------
   Ticket attachments
------------------------------------------------------------------ */

type ticketAttachmentRepo struct {
	db DB
}

func NewTicketAttachmentRepository(db DB) TicketAttachmentRepository {
	return &ticketAttachmentRepo{db: db}
}

func (r *ticketAttachmentRepo) Create(ctx context.Context, a *models.TicketAttachment) error {
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO ticket_attachments (
            id, ticket_id, file_name, file_path, content_type, size_bytes, uploaded_by, uploaded_at
        ) VALUES (?,?,?,?,?,?,?,?)
    `,
		a.ID, a.TicketID, a.FileName, a.FilePath,
		a.ContentType, a.SizeBytes, a.UploadedBy, formatTime(a.UploadedAt),
	)
	return err
}

func (r *ticketAttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TicketAttachment, error) {
	return scanTicketAttachment(r.db.QueryRowContext(ctx,
		baseSelectTicketAttachment()+" WHERE id=?", id))
}

func (r *ticketAttachmentRepo) ListByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*models.TicketAttachment, error) {
	rows, err := r.db.QueryContext(ctx,
		baseSelectTicketAttachment()+" WHERE ticket_id=? ORDER BY uploaded_at DESC", ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TicketAttachment
	for rows.Next() {
		a, err := scanTicketAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ticketAttachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ticket_attachments WHERE id=?`, id)
	return err
}

func baseSelectTicketAttachment() string {
	return `
        SELECT id, ticket_id, file_name, file_path, content_type, size_bytes, uploaded_by, uploaded_at
        FROM ticket_attachments
    `
}

func scanTicketAttachment(row row) (*models.TicketAttachment, error) {
	var (
		a          models.TicketAttachment
		uploadedAt string
	)
	err := row.Scan(
		&a.ID, &a.TicketID, &a.FileName, &a.FilePath,
		&a.ContentType, &a.SizeBytes, &a.UploadedBy, &uploadedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.UploadedAt = parseTime(uploadedAt)
	return &a, nil
}
