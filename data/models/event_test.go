package models

import (
	"testing"

	"events-scheduler/data/timefmt"

	"github.com/stretchr/testify/assert"
)

func TestValidateEvent(t *testing.T) {
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name: "valid event",
			event: Event{
				Name:     "Winter Gala",
				Location: "Manor Hotel",
				Start:    "2025-12-27 14:30:00",
			},
		},
		{
			name: "missing name",
			event: Event{
				Location: "Manor Hotel",
				Start:    "2025-12-27 14:30:00",
			},
			wantErr: true,
		},
		{
			name: "name too long",
			event: Event{
				Name:     string(longName),
				Location: "Manor Hotel",
				Start:    "2025-12-27 14:30:00",
			},
			wantErr: true,
		},
		{
			name: "missing location",
			event: Event{
				Name:  "Winter Gala",
				Start: "2025-12-27 14:30:00",
			},
			wantErr: true,
		},
		{
			name: "missing start",
			event: Event{
				Name:     "Winter Gala",
				Location: "Manor Hotel",
			},
			wantErr: true,
		},
		{
			name: "start in form shape, not storage shape",
			event: Event{
				Name:     "Winter Gala",
				Location: "Manor Hotel",
				Start:    "2025-12-27T14:30",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModel(tt.event)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatEventForDisplay(t *testing.T) {
	e := Event{
		ID:       1,
		Name:     "Winter Gala",
		Location: "Manor Hotel",
		Start:    "2025-12-27 14:30:00",
	}

	view := FormatEventForDisplay(e)

	assert.Equal(t, e, view.Event)
	assert.Equal(t, "December 27, 2025 at 2:30 PM", view.Long)
	assert.Equal(t, "Dec 27, 2025 - 2:30 PM", view.Short)
	assert.Equal(t, "December 27, 2025", view.DateOnly)
	assert.Equal(t, "2:30 PM", view.TimeOnly)
}

func TestFormatEventForDisplaySentinels(t *testing.T) {
	view := FormatEventForDisplay(Event{Name: "Unscheduled"})
	assert.Equal(t, timefmt.NotScheduled, view.Long)
	assert.Equal(t, timefmt.NotAvailable, view.Short)
	assert.Equal(t, timefmt.NotAvailable, view.DateOnly)
	assert.Equal(t, timefmt.NotAvailable, view.TimeOnly)

	view = FormatEventForDisplay(Event{Name: "Corrupt", Start: "not-a-date"})
	assert.Equal(t, timefmt.InvalidDateTime, view.Long)
	assert.Equal(t, timefmt.NotAvailable, view.Short)
}

func TestFormatEventsForDisplayPreservesOrder(t *testing.T) {
	events := []Event{
		{ID: 3, Name: "Third", Start: "2025-03-03 09:00:00"},
		{ID: 1, Name: "First", Start: ""},
		{ID: 2, Name: "Second", Start: "junk"},
	}

	views := FormatEventsForDisplay(events)

	assert.Len(t, views, 3)
	assert.Equal(t, int64(3), views[0].ID)
	assert.Equal(t, int64(1), views[1].ID)
	assert.Equal(t, int64(2), views[2].ID)

	assert.Equal(t, "March 3, 2025 at 9:00 AM", views[0].Long)
	assert.Equal(t, timefmt.NotScheduled, views[1].Long)
	assert.Equal(t, timefmt.InvalidDateTime, views[2].Long)

	// untouched fields carry through
	assert.Equal(t, "Second", views[2].Name)
}
