package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// PersonnelService manages the field crew roster. People are deactivated
// rather than deleted so historic event assignments keep resolving.
type PersonnelService struct {
	repo repositories.ServicePersonRepository
}

func NewPersonnelService(repo repositories.ServicePersonRepository) *PersonnelService {
	return &PersonnelService{repo: repo}
}

func (s *PersonnelService) Create(ctx context.Context, req *dtos.CreatePersonRequest) (*models.ServicePerson, error) {
	person := &models.ServicePerson{
		ID:        uuid.New(),
		FullName:  req.FullName,
		RoleTitle: req.RoleTitle,
		Email:     req.Email,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, person); err != nil {
		return nil, err
	}
	utils.Logger.WithField("person_id", person.ID).Info("Service person created")
	return person, nil
}

func (s *PersonnelService) List(ctx context.Context, includeInactive bool) ([]*models.ServicePerson, error) {
	return s.repo.ListAll(ctx, includeInactive)
}

func (s *PersonnelService) Get(ctx context.Context, id uuid.UUID) (*models.ServicePerson, error) {
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, utils.ErrNotFound
	}
	return person, nil
}

func (s *PersonnelService) Update(ctx context.Context, id uuid.UUID, req *dtos.UpdatePersonRequest) (*models.ServicePerson, error) {
	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	person.FullName = req.FullName
	person.RoleTitle = req.RoleTitle
	person.Email = req.Email
	person.Phone = req.Phone
	person.IsActive = req.IsActive
	if err := s.repo.Update(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// Deactivate retires a person from the active roster.
func (s *PersonnelService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	utils.Logger.WithField("person_id", id).Info("Service person deactivated")
	return nil
}
