package models

import (
	"time"

	"events-scheduler/data/timefmt"
)

type Event struct {
	ID        int64               `json:"id" db:"id" readOnly:"true"`
	Name      string              `validate:"required,max=100" json:"name" db:"name"`
	Location  string              `validate:"required,max=100" json:"location" db:"location"`
	Start     timefmt.StorageTime `validate:"required,storagedatetime" json:"start" db:"start_at"`
	CreatedAt time.Time           `json:"created_at" db:"created_at" readOnly:"true"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) GetID() int64 {
	return e.ID
}

func (Event) EmptySlice() interface{} {
	return &[]Event{}
}

// EventView is an Event augmented with the human-readable renderings of its
// start value. The display strings are part of the returned structure rather
// than injected into the record dynamically.
type EventView struct {
	Event
	timefmt.Display
}

// FormatEventForDisplay derives the four display strings for an event's start
// value. It never fails: absent or unparseable values come back as the
// timefmt sentinels.
func FormatEventForDisplay(e Event) EventView {
	return EventView{
		Event:   e,
		Display: timefmt.FormatDisplay(e.Start.String()),
	}
}

// FormatEventsForDisplay formats each event independently, preserving input
// order.
func FormatEventsForDisplay(events []Event) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = FormatEventForDisplay(e)
	}
	return views
}
