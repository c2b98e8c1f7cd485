package services

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Service
------------------------------------------------------------------ */

// PortfolioService manages properties and the recurring services
// configured on them. Status changes optionally fan out to the
// property's owners through the notification dispatcher; dispatch
// outcomes never roll back the persisted update.
type PortfolioService struct {
	propRepo    repositories.PropertyRepository
	serviceRepo repositories.PropertyServiceRepository
	notifier    NotificationService
}

func NewPortfolioService(
	propRepo repositories.PropertyRepository,
	serviceRepo repositories.PropertyServiceRepository,
	notifier NotificationService,
) *PortfolioService {
	return &PortfolioService{
		propRepo:    propRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
	}
}

/* ------------------------------------------------------------------
   Properties
------------------------------------------------------------------ */

func (s *PortfolioService) CreateProperty(ctx context.Context, req *dtos.CreatePropertyRequest) (*models.Property, error) {
	prop := &models.Property{
		ID:             uuid.New(),
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		AnnualQuote:    req.AnnualQuote,
		AnnualCredited: req.AnnualCredited,
	}
	if err := s.propRepo.Create(ctx, prop); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Property %s created (%s)", prop.Name, prop.ID)
	return prop, nil
}

func (s *PortfolioService) ListProperties(ctx context.Context) ([]*models.Property, error) {
	return s.propRepo.ListAll(ctx)
}

func (s *PortfolioService) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	prop, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}
	return prop, nil
}

// PropertyDetail returns a property together with its configured
// services, the shape both the admin detail view and the owner
// dashboard consume.
func (s *PortfolioService) PropertyDetail(ctx context.Context, id uuid.UUID) (*dtos.PropertyDetailResponse, error) {
	prop, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	svcs, err := s.serviceRepo.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dtos.PropertyDetailResponse{Property: *prop, Services: svcs}, nil
}

func (s *PortfolioService) UpdateProperty(ctx context.Context, id uuid.UUID, req *dtos.UpdatePropertyRequest) (*models.Property, error) {
	prop, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	prop.Name = req.Name
	prop.Address = req.Address
	prop.City = req.City
	prop.State = req.State
	prop.Zip = req.Zip
	if err := s.propRepo.Update(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *PortfolioService) UpdateFinancials(ctx context.Context, id uuid.UUID, req *dtos.UpdatePropertyFinancialsRequest) (*models.Property, error) {
	prop, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.AnnualQuote.IsNegative() || req.AnnualCredited.IsNegative() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Revenue figures cannot be negative",
		}
	}
	if err := s.propRepo.UpdateFinancials(ctx, id, req.AnnualQuote, req.AnnualCredited); err != nil {
		return nil, err
	}
	prop.AnnualQuote = req.AnnualQuote
	prop.AnnualCredited = req.AnnualCredited
	return prop, nil
}

func (s *PortfolioService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}
	return s.propRepo.Delete(ctx, id)
}

/* ------------------------------------------------------------------
   Property services
------------------------------------------------------------------ */

func (s *PortfolioService) AddService(ctx context.Context, propertyID uuid.UUID, req *dtos.CreateServiceRequest, updatedBy string) (*models.PropertyService, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.ServiceStatusScheduled
	}
	if err := validServiceStatus(status); err != nil {
		return nil, err
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = FrequencyLabel(req.Category, req.TimesPerYear)
	}

	svc := &models.PropertyService{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		Category:     req.Category,
		Frequency:    frequency,
		TimesPerYear: req.TimesPerYear,
		EachTimeCost: req.EachTimeCost,
		Status:       status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Notes:        req.Notes,
		UpdatedBy:    updatedBy,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *PortfolioService) ListServices(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyService, error) {
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.serviceRepo.ListByPropertyID(ctx, propertyID)
}

func (s *PortfolioService) ListAllServices(ctx context.Context) ([]*models.PropertyService, error) {
	return s.serviceRepo.ListAllWithProperty(ctx)
}

func (s *PortfolioService) GetService(ctx context.Context, id uuid.UUID) (*models.PropertyService, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.ErrNotFound
	}
	return svc, nil
}

func (s *PortfolioService) UpdateService(ctx context.Context, id uuid.UUID, req *dtos.UpdateServiceRequest, updatedBy string) (*models.PropertyService, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = svc.Status
	}
	if err := validServiceStatus(status); err != nil {
		return nil, err
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = FrequencyLabel(req.Category, req.TimesPerYear)
	}

	svc.Category = req.Category
	svc.Frequency = frequency
	svc.TimesPerYear = req.TimesPerYear
	svc.EachTimeCost = req.EachTimeCost
	svc.Status = status
	svc.StartDate = req.StartDate
	svc.EndDate = req.EndDate
	svc.Notes = req.Notes
	svc.UpdatedBy = updatedBy

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateServiceStatus persists the new status first, then fans the
// change out to the property's owners when asked to. Notification
// results ride back in the response; a failed send never undoes the
// status change.
func (s *PortfolioService) UpdateServiceStatus(ctx context.Context, id uuid.UUID, req *dtos.UpdateServiceStatusRequest, updatedBy string) (*dtos.ServiceStatusUpdateResponse, error) {
	if err := validServiceStatus(req.Status); err != nil {
		return nil, err
	}
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	prop, err := s.GetProperty(ctx, svc.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.UpdateStatus(ctx, id, req.Status, updatedBy); err != nil {
		return nil, err
	}
	svc.Status = req.Status
	svc.UpdatedBy = updatedBy

	resp := &dtos.ServiceStatusUpdateResponse{Service: *svc}
	if req.NotifyEmail || req.NotifySMS {
		results, err := s.notifier.DispatchStatusChange(ctx, prop, svc, req.Status, req.NotifyEmail, req.NotifySMS)
		if err != nil {
			return nil, err
		}
		resp.Notifications = results
	}
	return resp, nil
}

func (s *PortfolioService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

func validServiceStatus(status string) error {
	if slices.Contains(constants.ServiceStatuses, status) {
		return nil
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    fmt.Sprintf("Invalid service status %q", status),
	}
}
