package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateFinancials(ctx context.Context, id uuid.UUID, annualQuote, annualCredited decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO properties (id, name, address, city, state, zip, annual_quote, annual_credited, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)
    `,
		p.ID,
		p.Name,
		p.Address,
		p.City,
		p.State,
		p.Zip,
		p.AnnualQuote,
		p.AnnualCredited,
		formatTime(p.CreatedAt),
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return scanProperty(r.db.QueryRowContext(ctx, baseSelectProperty()+" WHERE id=?", id))
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectProperty()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE properties SET name=?, address=?, city=?, state=?, zip=?
        WHERE id=?
    `,
		p.Name, p.Address, p.City, p.State, p.Zip, p.ID,
	)
	return err
}

func (r *propertyRepo) UpdateFinancials(ctx context.Context, id uuid.UUID, annualQuote, annualCredited decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE properties SET annual_quote=?, annual_credited=?
        WHERE id=?
    `,
		annualQuote, annualCredited, id,
	)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id=?`, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return utils.ErrHasDependents
	}
	return err
}

func (r *propertyRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

func baseSelectProperty() string {
	return `
        SELECT
            id, name, address, city, state, zip,
            annual_quote, annual_credited, created_at
        FROM properties
    `
}

func scanProperty(row row) (*models.Property, error) {
	var (
		p         models.Property
		createdAt string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Address,
		&p.City,
		&p.State,
		&p.Zip,
		&p.AnnualQuote,
		&p.AnnualCredited,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
