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

type QuoteRepository interface {
	// Create persists the quote together with its line items.
	Create(ctx context.Context, q *models.Quote) error

	// GetByID returns the quote with line items attached.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListAll(ctx context.Context) ([]*models.Quote, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type quoteRepo struct {
	db DB
}

func NewQuoteRepository(db DB) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *models.Quote) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO quotes (
            id, customer_name, customer_email, property_name, region_label, size_band,
            sqft, notes, status,
            annual_total, monthly_total, estimated_cost, margin, margin_pct, created_at
        ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
    `,
		q.ID, q.CustomerName, q.CustomerEmail, q.PropertyName, q.RegionLabel, q.SizeBand,
		q.Sqft, q.Notes, q.Status,
		q.AnnualTotal, q.MonthlyTotal, q.EstimatedCost, q.Margin, q.MarginPct,
		formatTime(q.CreatedAt),
	)
	if err != nil {
		return err
	}
	for i := range q.LineItems {
		item := &q.LineItems[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.QuoteID = q.ID
		_, err := r.db.ExecContext(ctx, `
            INSERT INTO quote_line_items (
                id, quote_id, category, frequency, times_per_year,
                price_per_visit, included, line_total
            ) VALUES (?,?,?,?,?,?,?,?)
        `,
			item.ID, item.QuoteID, item.Category, item.Frequency,
			item.TimesPerYear, item.PricePerVisit, item.Included, item.LineTotal,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *quoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	q, err := scanQuote(r.db.QueryRowContext(ctx, baseSelectQuote()+" WHERE id=?", id))
	if err != nil || q == nil {
		return q, err
	}
	items, err := r.lineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	q.LineItems = items
	return q, nil
}

func (r *quoteRepo) ListAll(ctx context.Context) ([]*models.Quote, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectQuote()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quotes SET status=? WHERE id=?`, status, id)
	return err
}

func (r *quoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quote_line_items WHERE quote_id=?`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id=?`, id)
	return err
}

func (r *quoteRepo) lineItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, quote_id, category, frequency, times_per_year, price_per_visit, included, line_total
        FROM quote_line_items WHERE quote_id=? ORDER BY category
    `, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QuoteLineItem
	for rows.Next() {
		var item models.QuoteLineItem
		err := rows.Scan(
			&item.ID, &item.QuoteID, &item.Category, &item.Frequency,
			&item.TimesPerYear, &item.PricePerVisit, &item.Included, &item.LineTotal,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func baseSelectQuote() string {
	return `
        SELECT id, customer_name, customer_email, property_name, region_label, size_band,
               sqft, notes, status,
               annual_total, monthly_total, estimated_cost, margin, margin_pct, created_at
        FROM quotes
    `
}

func scanQuote(row row) (*models.Quote, error) {
	var (
		q         models.Quote
		createdAt string
	)
	err := row.Scan(
		&q.ID, &q.CustomerName, &q.CustomerEmail, &q.PropertyName, &q.RegionLabel, &q.SizeBand,
		&q.Sqft, &q.Notes, &q.Status,
		&q.AnnualTotal, &q.MonthlyTotal, &q.EstimatedCost, &q.Margin, &q.MarginPct,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	q.CreatedAt = parseTime(createdAt)
	return &q, nil
}
