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

// TicketService handles owner-raised tickets and the admin workflow on
// them. Owner operations are scoped by the authenticated identity; the
// property a ticket lands on always comes from the owner's mapping,
// never from the payload.
type TicketService struct {
	ticketRepo repositories.TicketRepository
}

func NewTicketService(ticketRepo repositories.TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

/* ------------------------------------------------------------------
   Owner operations
------------------------------------------------------------------ */

func (s *TicketService) Create(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, req *dtos.CreateTicketRequest) (*models.Ticket, error) {
	if propertyID == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Your user is not correctly linked to a property. Please contact admin.",
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = constants.TicketPriorityMedium
	}
	if err := validTicketPriority(priority); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		ID:          uuid.New(),
		PropertyID:  *propertyID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      constants.TicketStatusOpen,
		Priority:    priority,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Ticket %s created by owner %s", ticket.ID, ownerID)
	return ticket, nil
}

func (s *TicketService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Ticket, error) {
	return s.ticketRepo.ListByOwnerID(ctx, ownerID)
}

// GetForOwner returns the ticket only when it belongs to the caller.
func (s *TicketService) GetForOwner(ctx context.Context, ownerID, ticketID uuid.UUID) (*models.Ticket, error) {
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return ticket, nil
}

/* ------------------------------------------------------------------
   Admin workflow
------------------------------------------------------------------ */

func (s *TicketService) ListAll(ctx context.Context, statusFilter string) ([]*models.Ticket, error) {
	if statusFilter != "" && !slices.Contains(constants.TicketStatuses, statusFilter) {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Invalid ticket status filter %q", statusFilter),
		}
	}
	return s.ticketRepo.ListAll(ctx, statusFilter)
}

func (s *TicketService) Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, utils.ErrNotFound
	}
	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id uuid.UUID, req *dtos.UpdateTicketRequest) (*models.Ticket, error) {
	if !slices.Contains(constants.TicketStatuses, req.Status) {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Invalid ticket status %q", req.Status),
		}
	}
	if err := validTicketPriority(req.Priority); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Update(ctx, id, req.Status, req.Priority, req.AdminComment); err != nil {
		return nil, err
	}
	// Reload so the response carries the fresh updated_at and join fields.
	return s.Get(ctx, id)
}

func (s *TicketService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.ticketRepo.Delete(ctx, id)
}

func validTicketPriority(priority string) error {
	if slices.Contains(constants.TicketPriorities, priority) {
		return nil
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    fmt.Sprintf("Invalid ticket priority %q", priority),
	}
}
