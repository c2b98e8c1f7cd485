package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func (e *testEnv) eventService(email EmailSender, sms SMSSender) *EventService {
	return NewEventService(e.events, e.props, e.services, e.personnel,
		NewNotificationService(email, sms, e.users))
}

func TestEventServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	mowing := seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	crew := seedTestPerson(t, env, "John Green", "john@example.com", "+15125550199", true)

	linked, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:    prop.ID,
		ServiceID:     &mowing.ID,
		ProviderID:    &crew.ID,
		ScheduledDate: "2025-05-12",
	})
	require.NoError(t, err)
	require.Equal(t, "Mowing", linked.ServiceCategory, "category comes from the linked service")
	require.Equal(t, constants.EventStatusScheduled, linked.Status)

	adhoc, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Storm cleanup",
		ScheduledDate:   "2025-05-14",
	})
	require.NoError(t, err)
	require.Nil(t, adhoc.ServiceID)
	require.Equal(t, "Storm cleanup", adhoc.ServiceCategory)

	_, err = svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:    prop.ID,
		ScheduledDate: "2025-05-14",
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Ad-hoc events need a service category", appErr.Message)

	other := seedTestProperty(t, env, "Cedar Grove")
	_, err = svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:    other.ID,
		ServiceID:     &mowing.ID,
		ScheduledDate: "2025-05-14",
	})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Service does not belong to the given property", appErr.Message)

	_, err = svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      uuid.New(),
		ServiceCategory: "Mowing",
		ScheduledDate:   "2025-05-14",
	})
	require.ErrorIs(t, err, utils.ErrNotFound)

	retired := seedTestPerson(t, env, "Old Timer", "", "", false)
	_, err = svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ProviderID:      &retired.ID,
		ScheduledDate:   "2025-05-14",
	})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Service person Old Timer is inactive", appErr.Message)
}

func TestEventServiceDueStates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	now := time.Now()
	past := now.AddDate(0, 0, -2).Format(constants.DateLayout)
	todayStr := now.Format(constants.DateLayout)
	future := now.AddDate(0, 0, 2).Format(constants.DateLayout)

	for _, date := range []string{past, todayStr, future} {
		_, err := svc.Create(ctx, &dtos.CreateEventRequest{
			PropertyID:      prop.ID,
			ServiceCategory: "Mowing",
			ScheduledDate:   date,
		})
		require.NoError(t, err)
	}

	events, err := svc.ListByDateRange(ctx, past, future)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, constants.EventDueStateOverdue, events[0].DueState)
	require.Equal(t, constants.EventDueStateDueToday, events[1].DueState)
	require.Equal(t, constants.EventDueStateUpcoming, events[2].DueState)

	_, err = svc.UpdateStatus(ctx, events[0].ID, &dtos.UpdateEventStatusRequest{
		Status: constants.EventStatusCompleted,
	})
	require.NoError(t, err)

	byProp, err := svc.ListByProperty(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, constants.EventStatusCompleted, byProp[0].DueState,
		"completed events report their status, not calendar urgency")
}

func TestEventServiceUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	event, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, event.ID, &dtos.UpdateEventStatusRequest{
		Status:           constants.EventStatusCompleted,
		FollowupRequired: true,
		FollowupNotes:    "Check the east fence line next visit.",
	})
	require.NoError(t, err)
	require.Equal(t, constants.EventStatusCompleted, updated.Status)
	require.True(t, updated.FollowupRequired)
	require.Equal(t, "Check the east fence line next visit.", updated.FollowupNotes)

	_, err = svc.UpdateStatus(ctx, event.ID, &dtos.UpdateEventStatusRequest{Status: "Done"})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, `Invalid event status "Done"`, appErr.Message)

	_, err = svc.UpdateStatus(ctx, uuid.New(), &dtos.UpdateEventStatusRequest{
		Status: constants.EventStatusCancelled,
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestEventServiceAssignProvider(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	crew := seedTestPerson(t, env, "John Green", "john@example.com", "+15125550199", true)
	retired := seedTestPerson(t, env, "Old Timer", "", "", false)

	event, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	assigned, err := svc.AssignProvider(ctx, event.ID, &crew.ID)
	require.NoError(t, err)
	require.Equal(t, crew.ID, *assigned.ProviderID)
	require.Equal(t, "John Green", assigned.ProviderName)

	_, err = svc.AssignProvider(ctx, event.ID, &retired.ID)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.StatusCode)

	unassigned, err := svc.AssignProvider(ctx, event.ID, nil)
	require.NoError(t, err)
	require.Nil(t, unassigned.ProviderID)
}

func TestEventServiceSendReminder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	svc := env.eventService(email, sms)

	prop := seedTestProperty(t, env, "Green Acres")
	crew := seedTestPerson(t, env, "John Green", "john@example.com", "+15125550199", true)

	unassigned, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	_, err = svc.SendReminder(ctx, unassigned.ID)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Event has no assigned provider to remind", appErr.Message)

	assigned, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ProviderID:      &crew.ID,
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	resp, err := svc.SendReminder(ctx, assigned.ID)
	require.NoError(t, err)
	require.Equal(t, EmailSentResult, resp.EmailResult)
	require.Equal(t, SMSSentResult, resp.SMSResult)
	require.Len(t, email.sent, 1)
	require.Equal(t, "john@example.com", email.sent[0].To)

	reloaded, err := svc.Get(ctx, assigned.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastReminderAt)
}

func TestEventServiceSendReminderUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	crew := seedTestPerson(t, env, "John Green", "john@example.com", "+15125550199", true)

	event, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ProviderID:      &crew.ID,
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	resp, err := svc.SendReminder(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, EmailNotConfiguredResult, resp.EmailResult)
	require.Equal(t, SMSNotConfiguredResult, resp.SMSResult)

	reloaded, err := svc.Get(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastReminderAt, "the reminder attempt is stamped even when transports are unconfigured")
}

func TestEventServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.eventService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	event, err := svc.Create(ctx, &dtos.CreateEventRequest{
		PropertyID:      prop.ID,
		ServiceCategory: "Mowing",
		ScheduledDate:   "2025-05-12",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, event.ID))
	_, err = svc.Get(ctx, event.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, uuid.New()), utils.ErrNotFound)
}
