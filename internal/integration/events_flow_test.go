package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/routes"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func TestEventCalendarQueries(t *testing.T) {
	year := time.Now().Year()

	// The seed completes three April mowings per property.
	path := fmt.Sprintf("%s?from=%d-04-01&to=%d-04-30", routes.AdminEvents, year, year)
	resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []*models.ServiceEvent
	decodeInto(t, data, &events)
	require.Len(t, events, 30)
	for _, ev := range events {
		require.Equal(t, constants.EventStatusCompleted, ev.Status)
		require.Equal(t, "Mowing", ev.ServiceCategory)
		require.NotNil(t, ev.ServiceID)
		require.NotEmpty(t, ev.PropertyName)
		require.Equal(t, constants.EventStatusCompleted, ev.DueState)
	}

	t.Run("range is mandatory", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodGet, routes.AdminEvents, adminToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))
	})

	t.Run("dates must be ISO", func(t *testing.T) {
		path := fmt.Sprintf("%s?from=April&to=%d-04-30", routes.AdminEvents, year)
		resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))
	})

	t.Run("per property calendar", func(t *testing.T) {
		propID := propertyIDByName(t, "Oakridge Villas")
		resp, data := doRequest(t, http.MethodGet,
			"/api/v1/admin/properties/"+propID.String()+"/events", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var events []*models.ServiceEvent
		decodeInto(t, data, &events)
		require.Len(t, events, 4)
	})
}

// TestAdHocEventLifecycle walks one ad-hoc activity from creation through
// provider assignment, reminders, completion and removal.
func TestAdHocEventLifecycle(t *testing.T) {
	propID := propertyIDByName(t, "Maple Heights")
	date := fmt.Sprintf("%d-09-15", time.Now().Year())

	// 1) Create an ad-hoc activity with no provider assigned
	resp, data := doRequest(t, http.MethodPost, routes.AdminEvents, adminToken, dtos.CreateEventRequest{
		PropertyID:      propID,
		ServiceCategory: "Storm Debris Cleanup",
		ScheduledDate:   date,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event models.ServiceEvent
	decodeInto(t, data, &event)
	require.Nil(t, event.ServiceID)
	require.Nil(t, event.ProviderID)
	require.Equal(t, constants.EventStatusScheduled, event.Status)
	eventPath := "/api/v1/admin/events/" + event.ID.String()

	// Ad-hoc events cannot be created without a category
	resp, data = doRequest(t, http.MethodPost, routes.AdminEvents, adminToken, dtos.CreateEventRequest{
		PropertyID:    propID,
		ScheduledDate: date,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 2) Reminders need an assignee
	resp, data = doRequest(t, http.MethodPost, eventPath+"/reminder", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 3) Assign a crew member
	providerID := personIDByName(t, "John Green")
	resp, data = doRequest(t, http.MethodPatch, eventPath+"/provider", adminToken,
		dtos.AssignEventProviderRequest{ProviderID: &providerID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &event)
	require.NotNil(t, event.ProviderID)
	require.Equal(t, providerID, *event.ProviderID)
	require.Equal(t, "John Green", event.ProviderName)

	// 4) Reminder goes out on both channels; neither transport is
	// configured in this environment so the outcomes say exactly that.
	resp, data = doRequest(t, http.MethodPost, eventPath+"/reminder", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reminder dtos.EventReminderResponse
	decodeInto(t, data, &reminder)
	require.Equal(t, services.EmailNotConfiguredResult, reminder.EmailResult)
	require.Equal(t, services.SMSNotConfiguredResult, reminder.SMSResult)

	resp, data = doRequest(t, http.MethodGet, eventPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &event)
	require.NotNil(t, event.LastReminderAt)

	// 5) Complete it with a followup note
	resp, data = doRequest(t, http.MethodPatch, eventPath+"/status", adminToken, dtos.UpdateEventStatusRequest{
		Status:           constants.EventStatusCompleted,
		FollowupRequired: true,
		FollowupNotes:    "Check the north fence line again after the next storm.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, data, &event)
	require.Equal(t, constants.EventStatusCompleted, event.Status)
	require.True(t, event.FollowupRequired)

	// Unknown statuses are rejected
	resp, data = doRequest(t, http.MethodPatch, eventPath+"/status", adminToken,
		dtos.UpdateEventStatusRequest{Status: "Paused"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))

	// 6) Remove it so the seeded calendar keeps its shape
	resp, _ = doRequest(t, http.MethodDelete, eventPath, adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, eventPath, adminToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
