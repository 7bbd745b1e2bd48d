// Package timefmt converts an event's start value between the string shape a
// native datetime-local form control emits, the textual shape a SQL timestamp
// column stores, and the human-readable shapes the UI displays. Every function
// here is a pure string transformation.
package timefmt

import (
	"errors"
	"time"
)

const (
	// FormLayout is the 16-character value emitted by an HTML
	// datetime-local input, e.g. "2025-12-27T14:30".
	FormLayout = "2006-01-02T15:04"

	// StorageLayout is the 19-character textual form of a SQL DATETIME,
	// e.g. "2025-12-27 14:30:00". Values written through ToStorage always
	// carry zero seconds.
	StorageLayout = "2006-01-02 15:04:05"
)

// Display layouts. The long form spells the month out, the short form
// abbreviates it, and times render as 12-hour clock with AM/PM.
const (
	longLayout     = "January 2, 2006 at 3:04 PM"
	shortLayout    = "Jan 2, 2006 - 3:04 PM"
	dateOnlyLayout = "January 2, 2006"
	timeOnlyLayout = "3:04 PM"
)

// Sentinel display values substituted when no valid start value is available.
const (
	NotScheduled    = "Not scheduled"
	InvalidDateTime = "Invalid Date/Time"
	NotAvailable    = "N/A"
)

// ErrInvalidFormat is returned by the converters when a non-empty input does
// not match the shape they expect. Callers should treat it as a user-input
// validation failure, not a system fault.
var ErrInvalidFormat = errors.New("timefmt: value does not match expected date/time shape")

// IsFormValue reports whether s is exactly a 16-character form value:
// 4-digit year, 2-digit month/day/hour/minute, 'T' separator at position 10.
// time.Parse also rejects out-of-range calendar fields for us.
func IsFormValue(s string) bool {
	if len(s) != len(FormLayout) || s[10] != 'T' {
		return false
	}
	_, err := time.Parse(FormLayout, s)
	return err == nil
}

// IsStorageValue reports whether s is exactly a 19-character storage value
// with a space separator at position 10.
func IsStorageValue(s string) bool {
	if len(s) != len(StorageLayout) || s[10] != ' ' {
		return false
	}
	_, err := time.Parse(StorageLayout, s)
	return err == nil
}

// ToStorage converts a form value to its storage representation by swapping
// the separator for a space and appending zero seconds:
//
//	"2025-12-27T14:30" -> "2025-12-27 14:30:00"
//
// An empty input means "no value" and passes through as an empty output.
// Anything else that fails IsFormValue returns ErrInvalidFormat rather than
// silently producing a malformed storage string.
func ToStorage(form string) (string, error) {
	if form == "" {
		return "", nil
	}
	if !IsFormValue(form) {
		return "", ErrInvalidFormat
	}
	return form[:10] + " " + form[11:] + ":00", nil
}

// ToForm converts a storage value back to the 16-character form
// representation, discarding seconds and any trailing suffix:
//
//	"2025-12-27 14:30:00" -> "2025-12-27T14:30"
//
// An empty input passes through as an empty output. Inputs shorter than 16
// characters, or without a space at position 10, return ErrInvalidFormat.
func ToForm(storage string) (string, error) {
	if storage == "" {
		return "", nil
	}
	if len(storage) < len(FormLayout) || storage[10] != ' ' {
		return "", ErrInvalidFormat
	}
	return storage[:10] + "T" + storage[11:16], nil
}

// Display holds the four human-readable renderings of a start value.
type Display struct {
	Long     string `json:"start_display"`
	Short    string `json:"start_display_short"`
	DateOnly string `json:"start_date"`
	TimeOnly string `json:"start_time"`
}

// FormatDisplay renders a storage value for display. It is total: an empty
// input yields the "Not scheduled" sentinels, an unparseable input yields the
// "Invalid Date/Time" sentinels, and no input ever causes an error to reach
// the caller. Seconds, when present, are read but not displayed.
func FormatDisplay(storage string) Display {
	if storage == "" {
		return Display{
			Long:     NotScheduled,
			Short:    NotAvailable,
			DateOnly: NotAvailable,
			TimeOnly: NotAvailable,
		}
	}

	t, err := time.Parse(StorageLayout, storage)
	if err != nil {
		// A value that never passed through ToStorage may still carry the
		// form shape; render it rather than calling it invalid.
		t, err = time.Parse(FormLayout, storage)
	}
	if err != nil {
		return Display{
			Long:     InvalidDateTime,
			Short:    NotAvailable,
			DateOnly: NotAvailable,
			TimeOnly: NotAvailable,
		}
	}

	return Display{
		Long:     t.Format(longLayout),
		Short:    t.Format(shortLayout),
		DateOnly: t.Format(dateOnlyLayout),
		TimeOnly: t.Format(timeOnlyLayout),
	}
}
