package services

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

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

// EventService schedules service visits and drives provider reminders.
// Events either occur against a configured property service or stand
// alone as ad-hoc activities with their own category.
type EventService struct {
	eventRepo     repositories.ServiceEventRepository
	propRepo      repositories.PropertyRepository
	serviceRepo   repositories.PropertyServiceRepository
	personnelRepo repositories.ServicePersonRepository
	notifier      NotificationService
}

func NewEventService(
	eventRepo repositories.ServiceEventRepository,
	propRepo repositories.PropertyRepository,
	serviceRepo repositories.PropertyServiceRepository,
	personnelRepo repositories.ServicePersonRepository,
	notifier NotificationService,
) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		propRepo:      propRepo,
		serviceRepo:   serviceRepo,
		personnelRepo: personnelRepo,
		notifier:      notifier,
	}
}

/* ------------------------------------------------------------------
   Scheduling
------------------------------------------------------------------ */

func (s *EventService) Create(ctx context.Context, req *dtos.CreateEventRequest) (*models.ServiceEvent, error) {
	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}

	category := req.ServiceCategory
	if req.ServiceID != nil {
		svc, err := s.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, utils.ErrNotFound
		}
		if svc.PropertyID != req.PropertyID {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    "Service does not belong to the given property",
			}
		}
		category = svc.Category
	}
	if category == "" {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Ad-hoc events need a service category",
		}
	}

	if req.ProviderID != nil {
		if err := s.requireActiveProvider(ctx, *req.ProviderID); err != nil {
			return nil, err
		}
	}

	event := &models.ServiceEvent{
		ID:              uuid.New(),
		PropertyID:      req.PropertyID,
		ServiceID:       req.ServiceID,
		ProviderID:      req.ProviderID,
		ServiceCategory: category,
		ScheduledDate:   req.ScheduledDate,
		Status:          constants.EventStatusScheduled,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.ServiceEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, utils.ErrNotFound
	}
	event.DueState = EventDueState(event.ScheduledDate, event.Status, today())
	return event, nil
}

// ListByDateRange returns events in the window with their due state
// derived against today's date.
func (s *EventService) ListByDateRange(ctx context.Context, from, to string) ([]*models.ServiceEvent, error) {
	events, err := s.eventRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	stampDueStates(events)
	return events, nil
}

func (s *EventService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.ServiceEvent, error) {
	events, err := s.eventRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	stampDueStates(events)
	return events, nil
}

func (s *EventService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dtos.UpdateEventStatusRequest) (*models.ServiceEvent, error) {
	if !slices.Contains(constants.EventStatuses, req.Status) {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Invalid event status %q", req.Status),
		}
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, req.Status, req.FollowupRequired, req.FollowupNotes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *EventService) AssignProvider(ctx context.Context, id uuid.UUID, providerID *uuid.UUID) (*models.ServiceEvent, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if providerID != nil {
		if err := s.requireActiveProvider(ctx, *providerID); err != nil {
			return nil, err
		}
	}
	if err := s.eventRepo.AssignProvider(ctx, id, providerID); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

/* ------------------------------------------------------------------
   Reminders
------------------------------------------------------------------ */

// SendReminder notifies the assigned provider over email and SMS, best
// effort, and stamps last_reminder_at whether or not either transport
// succeeded. The admin reads the outcome from the result strings.
func (s *EventService) SendReminder(ctx context.Context, id uuid.UUID) (*dtos.EventReminderResponse, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.ProviderID == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Event has no assigned provider to remind",
		}
	}

	emailResult, smsResult := s.notifier.SendEventReminder(ctx, event)
	if err := s.eventRepo.TouchReminder(ctx, id); err != nil {
		return nil, err
	}
	return &dtos.EventReminderResponse{EmailResult: emailResult, SMSResult: smsResult}, nil
}

func (s *EventService) requireActiveProvider(ctx context.Context, providerID uuid.UUID) error {
	person, err := s.personnelRepo.GetByID(ctx, providerID)
	if err != nil {
		return err
	}
	if person == nil {
		return utils.ErrNotFound
	}
	if !person.IsActive {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Service person %s is inactive", person.FullName),
		}
	}
	return nil
}

func stampDueStates(events []*models.ServiceEvent) {
	now := today()
	for _, e := range events {
		e.DueState = EventDueState(e.ScheduledDate, e.Status, now)
	}
}

func today() string {
	return time.Now().Format(constants.DateLayout)
}
