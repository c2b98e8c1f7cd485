package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
)

func TestFrequencyLabel(t *testing.T) {
	cases := []struct {
		category string
		times    int
		want     string
	}{
		{"Mowing", 0, "Not configured"},
		{"Mowing", -3, "Not configured"},
		{"Weed Control", 1, "Once / Year"},
		{"Tree & Shrub Care", 2, "Twice / Year"},
		{"Mowing", 22, "Weekly (22 visits)"},
		{"Fertilizer", 5, "5 Times / Year"},
		{"Mulching", 2, "Every 6 Months"},
		{"Premium mulch refresh", 7, "Every 6 Months"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FrequencyLabel(tc.category, tc.times),
			"category=%s times=%d", tc.category, tc.times)
	}
}

func TestFulfilmentLabel(t *testing.T) {
	cases := []struct {
		planned   int
		completed int
		want      string
	}{
		{0, 5, constants.FulfilmentNotConfigured},
		{-1, 0, constants.FulfilmentNotConfigured},
		{22, 22, constants.FulfilmentOnTrack},
		{22, 30, constants.FulfilmentOnTrack},
		{22, 0, constants.FulfilmentNotStarted},
		{22, 9, constants.FulfilmentInProgress},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FulfilmentLabel(tc.planned, tc.completed),
			"planned=%d completed=%d", tc.planned, tc.completed)
	}
}

func TestEventDueState(t *testing.T) {
	today := "2025-05-10"
	cases := []struct {
		date   string
		status string
		want   string
	}{
		{"2025-05-01", constants.EventStatusScheduled, constants.EventDueStateOverdue},
		{"2025-05-10", constants.EventStatusScheduled, constants.EventDueStateDueToday},
		{"2025-05-20", constants.EventStatusScheduled, constants.EventDueStateUpcoming},
		{"2025-05-01", constants.EventStatusCompleted, constants.EventStatusCompleted},
		{"2025-05-20", constants.EventStatusCancelled, constants.EventStatusCancelled},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EventDueState(tc.date, tc.status, today),
			"date=%s status=%s", tc.date, tc.status)
	}
}
