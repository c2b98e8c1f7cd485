package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// PricingService maintains the price master: per-region suggested rates
// the quote builder and the admins consult when pricing work.
type PricingService struct {
	repo repositories.PriceMasterRepository
}

func NewPricingService(repo repositories.PriceMasterRepository) *PricingService {
	return &PricingService{repo: repo}
}

func (s *PricingService) Create(ctx context.Context, req *dtos.CreatePriceRequest) (*models.PriceMasterRow, error) {
	row := &models.PriceMasterRow{
		ID:            uuid.New(),
		Region:        req.Region,
		Category:      req.Category,
		Frequency:     req.Frequency,
		TimesPerYear:  req.TimesPerYear,
		SuggestedRate: req.SuggestedRate,
		Notes:         req.Notes,
	}
	if row.Frequency == "" {
		row.Frequency = FrequencyLabel(row.Category, row.TimesPerYear)
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *PricingService) List(ctx context.Context) ([]*models.PriceMasterRow, error) {
	return s.repo.ListAll(ctx)
}

func (s *PricingService) Get(ctx context.Context, id uuid.UUID) (*models.PriceMasterRow, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, utils.ErrNotFound
	}
	return row, nil
}

func (s *PricingService) Update(ctx context.Context, id uuid.UUID, req *dtos.UpdatePriceRequest) (*models.PriceMasterRow, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Region = req.Region
	row.Category = req.Category
	row.Frequency = req.Frequency
	row.TimesPerYear = req.TimesPerYear
	row.SuggestedRate = req.SuggestedRate
	row.Notes = req.Notes
	if row.Frequency == "" {
		row.Frequency = FrequencyLabel(row.Category, row.TimesPerYear)
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *PricingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
