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

type ServicePersonRepository interface {
	Create(ctx context.Context, p *models.ServicePerson) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.ServicePerson, error)
	// ListAll returns active personnel, or everyone when includeInactive
	// is set, ordered by name.
	ListAll(ctx context.Context, includeInactive bool) ([]*models.ServicePerson, error)

	Update(ctx context.Context, p *models.ServicePerson) error
	// Deactivate retires a person without deleting rows that reference
	// them from scheduled events.
	Deactivate(ctx context.Context, id uuid.UUID) error

	CountActive(ctx context.Context) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type servicePersonRepo struct {
	db DB
}

func NewServicePersonRepository(db DB) ServicePersonRepository {
	return &servicePersonRepo{db: db}
}

func (r *servicePersonRepo) Create(ctx context.Context, p *models.ServicePerson) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO service_persons (id, full_name, role_title, email, phone, is_active, created_at)
        VALUES (?,?,?,?,?,?,?)
    `, p.ID, p.FullName, p.RoleTitle, p.Email, p.Phone, p.IsActive, formatTime(p.CreatedAt))
	return err
}

func (r *servicePersonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServicePerson, error) {
	return scanServicePerson(r.db.QueryRowContext(ctx, baseSelectServicePerson()+" WHERE id=?", id))
}

func (r *servicePersonRepo) ListAll(ctx context.Context, includeInactive bool) ([]*models.ServicePerson, error) {
	query := baseSelectServicePerson()
	if !includeInactive {
		query += " WHERE is_active=1"
	}
	query += " ORDER BY full_name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ServicePerson
	for rows.Next() {
		p, err := scanServicePerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *servicePersonRepo) Update(ctx context.Context, p *models.ServicePerson) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE service_persons SET full_name=?, role_title=?, email=?, phone=?, is_active=? WHERE id=?
    `, p.FullName, p.RoleTitle, p.Email, p.Phone, p.IsActive, p.ID)
	return err
}

func (r *servicePersonRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE service_persons SET is_active=0 WHERE id=?`, id)
	return err
}

func (r *servicePersonRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_persons WHERE is_active=1`).Scan(&n)
	return n, err
}

func baseSelectServicePerson() string {
	return `
        SELECT id, full_name, role_title, email, phone, is_active, created_at
        FROM service_persons
    `
}

func scanServicePerson(row row) (*models.ServicePerson, error) {
	var (
		p         models.ServicePerson
		createdAt string
	)
	err := row.Scan(&p.ID, &p.FullName, &p.RoleTitle, &p.Email, &p.Phone, &p.IsActive, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
