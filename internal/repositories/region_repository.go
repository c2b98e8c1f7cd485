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

// RegionRepository stores the quote builder reference data: serviceable
// regions, the service catalog and the sqft-banded rate table.
type RegionRepository interface {
	CreateRegion(ctx context.Context, r *models.Region) error
	ListRegions(ctx context.Context) ([]*models.Region, error)
	GetRegionByID(ctx context.Context, id uuid.UUID) (*models.Region, error)
	GetRegionByLocation(ctx context.Context, state, city, tier string) (*models.Region, error)

	CreateCatalogItem(ctx context.Context, item *models.ServiceCatalogItem) error
	ListCatalogItems(ctx context.Context) ([]*models.ServiceCatalogItem, error)
	GetCatalogItemByCode(ctx context.Context, code string) (*models.ServiceCatalogItem, error)

	CreateRate(ctx context.Context, rate *models.RegionServiceRate) error
	// FindRate returns the rate row whose sqft band covers the given
	// square footage, or nil when the region has no band for it.
	FindRate(ctx context.Context, regionID, catalogItemID uuid.UUID, sqft int) (*models.RegionServiceRate, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type regionRepo struct {
	db DB
}

func NewRegionRepository(db DB) RegionRepository {
	return &regionRepo{db: db}
}

func (r *regionRepo) CreateRegion(ctx context.Context, reg *models.Region) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO regions (id, state, city, tier, cost_factor, rate_factor)
        VALUES (?,?,?,?,?,?)
    `, reg.ID, reg.State, reg.City, reg.Tier, reg.CostFactor, reg.RateFactor)
	return err
}

func (r *regionRepo) ListRegions(ctx context.Context) ([]*models.Region, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectRegion()+" ORDER BY state, city, tier")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Region
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *regionRepo) GetRegionByID(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	return scanRegion(r.db.QueryRowContext(ctx, baseSelectRegion()+" WHERE id=?", id))
}

func (r *regionRepo) GetRegionByLocation(ctx context.Context, state, city, tier string) (*models.Region, error) {
	return scanRegion(r.db.QueryRowContext(ctx,
		baseSelectRegion()+" WHERE state=? AND city=? AND tier=?", state, city, tier))
}

func (r *regionRepo) CreateCatalogItem(ctx context.Context, item *models.ServiceCatalogItem) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO service_catalog (id, code, name, default_times_per_year)
        VALUES (?,?,?,?)
    `, item.ID, item.Code, item.Name, item.DefaultTimesPerYear)
	return err
}

func (r *regionRepo) ListCatalogItems(ctx context.Context) ([]*models.ServiceCatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectCatalogItem()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ServiceCatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *regionRepo) GetCatalogItemByCode(ctx context.Context, code string) (*models.ServiceCatalogItem, error) {
	return scanCatalogItem(r.db.QueryRowContext(ctx, baseSelectCatalogItem()+" WHERE code=?", code))
}

func (r *regionRepo) CreateRate(ctx context.Context, rate *models.RegionServiceRate) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO region_service_rates (id, region_id, catalog_item_id, min_sqft, max_sqft, price_per_visit)
        VALUES (?,?,?,?,?,?)
    `, rate.ID, rate.RegionID, rate.CatalogItemID, rate.MinSqft, rate.MaxSqft, rate.PricePerVisit)
	return err
}

func (r *regionRepo) FindRate(ctx context.Context, regionID, catalogItemID uuid.UUID, sqft int) (*models.RegionServiceRate, error) {
	var rate models.RegionServiceRate
	err := r.db.QueryRowContext(ctx, `
        SELECT id, region_id, catalog_item_id, min_sqft, max_sqft, price_per_visit
        FROM region_service_rates
        WHERE region_id=? AND catalog_item_id=? AND min_sqft <= ? AND max_sqft >= ?
        ORDER BY min_sqft DESC LIMIT 1
    `, regionID, catalogItemID, sqft, sqft).Scan(
		&rate.ID, &rate.RegionID, &rate.CatalogItemID,
		&rate.MinSqft, &rate.MaxSqft, &rate.PricePerVisit,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func baseSelectRegion() string {
	return `
        SELECT id, state, city, tier, cost_factor, rate_factor
        FROM regions
    `
}

func scanRegion(row row) (*models.Region, error) {
	var reg models.Region
	err := row.Scan(&reg.ID, &reg.State, &reg.City, &reg.Tier, &reg.CostFactor, &reg.RateFactor)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func baseSelectCatalogItem() string {
	return `
        SELECT id, code, name, default_times_per_year
        FROM service_catalog
    `
}

func scanCatalogItem(row row) (*models.ServiceCatalogItem, error) {
	var item models.ServiceCatalogItem
	err := row.Scan(&item.ID, &item.Code, &item.Name, &item.DefaultTimesPerYear)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
