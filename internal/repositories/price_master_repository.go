package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PriceMasterRepository interface {
	Create(ctx context.Context, p *models.PriceMasterRow) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PriceMasterRow, error)
	ListAll(ctx context.Context) ([]*models.PriceMasterRow, error)

	Update(ctx context.Context, p *models.PriceMasterRow) error
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type priceMasterRepo struct {
	db DB
}

func NewPriceMasterRepository(db DB) PriceMasterRepository {
	return &priceMasterRepo{db: db}
}

func (r *priceMasterRepo) Create(ctx context.Context, p *models.PriceMasterRow) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO price_master (id, region, category, frequency, times_per_year, suggested_rate, notes)
        VALUES (?,?,?,?,?,?,?)
    `, p.ID, p.Region, p.Category, p.Frequency, p.TimesPerYear, p.SuggestedRate, p.Notes)
	return err
}

func (r *priceMasterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PriceMasterRow, error) {
	return scanPriceMasterRow(r.db.QueryRowContext(ctx, baseSelectPriceMaster()+" WHERE id=?", id))
}

func (r *priceMasterRepo) ListAll(ctx context.Context) ([]*models.PriceMasterRow, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectPriceMaster()+" ORDER BY region, category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PriceMasterRow
	for rows.Next() {
		p, err := scanPriceMasterRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *priceMasterRepo) Update(ctx context.Context, p *models.PriceMasterRow) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE price_master SET region=?, category=?, frequency=?, times_per_year=?, suggested_rate=?, notes=?
        WHERE id=?
    `, p.Region, p.Category, p.Frequency, p.TimesPerYear, p.SuggestedRate, p.Notes, p.ID)
	return err
}

func (r *priceMasterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM price_master WHERE id=?`, id)
	return err
}

func (r *priceMasterRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM price_master`).Scan(&n)
	return n, err
}

func baseSelectPriceMaster() string {
	return `
        SELECT id, region, category, frequency, times_per_year, suggested_rate, notes
        FROM price_master
    `
}

func scanPriceMasterRow(row row) (*models.PriceMasterRow, error) {
	var p models.PriceMasterRow
	err := row.Scan(
		&p.ID, &p.Region, &p.Category, &p.Frequency,
		&p.TimesPerYear, &p.SuggestedRate, &p.Notes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
