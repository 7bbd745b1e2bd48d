package main

import (
	_ "embed"
	"html/template"
	"net/http"
	"strconv"

	"events-scheduler/data/timefmt"
)

//go:embed templates/event_form.html.tmpl
var eventFormTemplate string

var eventFormTmpl = template.Must(template.New("event_form").Parse(eventFormTemplate))

type eventFormData struct {
	Title     string
	Action    string
	Method    string
	Name      string
	Location  string
	StartForm string
}

// NewEventForm renders an empty event form. The start field is a native
// datetime-local input, so the browser submits the 16-character form value
// the conversion layer expects.
func (app *application) NewEventForm(w http.ResponseWriter, r *http.Request) {
	app.renderEventForm(w, eventFormData{
		Title:  "Schedule an event",
		Action: "/events",
		Method: "POST",
	})
}

// EditEventForm renders the form prefilled with a stored event, converting
// the storage-format start value back to the form shape for the picker.
func (app *application) EditEventForm(w http.ResponseWriter, r *http.Request) {
	e, ok := app.fetchEvent(w, r)
	if !ok {
		return
	}

	startForm, err := timefmt.ToForm(e.Start.String())
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.renderEventForm(w, eventFormData{
		Title:     "Edit event",
		Action:    "/events/" + strconv.FormatInt(e.ID, 10),
		Method:    "PUT",
		Name:      e.Name,
		Location:  e.Location,
		StartForm: startForm,
	})
}

func (app *application) renderEventForm(w http.ResponseWriter, data eventFormData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := eventFormTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
