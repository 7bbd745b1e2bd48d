package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"events-scheduler/data/models"
	"events-scheduler/data/repository"
	"events-scheduler/data/timefmt"

	"github.com/go-chi/chi/v5"
)

// eventPayload is the JSON body for create and update. The start value
// arrives in the 16-character form shape a datetime-local input emits and is
// checked by the formdatetime validation before conversion to storage form.
type eventPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"required,max=100"`
	Start    string `json:"start" validate:"required,formdatetime"`
}

// eventResponse carries the event, its display strings, and the form-shaped
// start value an edit form needs to prefill its picker.
type eventResponse struct {
	models.EventView
	StartForm string `json:"start_form"`
}

const perPageCookie = "per_page"

// ListEvents returns a page of events with display strings populated.
// Filters, sortBy, page, and perPage pass through to the repository query.
func (app *application) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := queryParamsFromRequest(r)
	app.resolvePerPage(w, r, params)

	events, err := app.Repo.QueryEvents(params)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, models.FormatEventsForDisplay(events), "events")
}

func (app *application) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if err := app.ReadJSON(w, r, &payload, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	start, err := timefmt.ToStorage(payload.Start)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	e := models.Event{
		Name:     payload.Name,
		Location: payload.Location,
		Start:    timefmt.StorageTime(start),
	}
	if err := models.ValidateModel(e); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	id, err := app.Repo.Create(e)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	e.ID = id
	app.SendSuccessJSON(w, http.StatusCreated, models.FormatEventForDisplay(e), "event")
}

func (app *application) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := app.fetchEvent(w, r)
	if !ok {
		return
	}

	startForm, err := timefmt.ToForm(e.Start.String())
	if err != nil {
		// a stored value that cannot round trip is a data fault, not user error
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	res := eventResponse{
		EventView: models.FormatEventForDisplay(e),
		StartForm: startForm,
	}
	app.SendSuccessJSON(w, http.StatusOK, res, "event")
}

func (app *application) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := app.fetchEvent(w, r)
	if !ok {
		return
	}

	var payload eventPayload
	if err := app.ReadJSON(w, r, &payload, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	start, err := timefmt.ToStorage(payload.Start)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	e.Name = payload.Name
	e.Location = payload.Location
	e.Start = timefmt.StorageTime(start)

	if err := models.ValidateModel(e); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	if err := app.Repo.Update(e); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, models.FormatEventForDisplay(e), "event")
}

func (app *application) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := app.fetchEvent(w, r)
	if !ok {
		return
	}

	if err := app.Repo.Delete(e); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// fetchEvent resolves the eventID route parameter to a stored event, writing
// the error response itself when the id is malformed or unknown.
func (app *application) fetchEvent(w http.ResponseWriter, r *http.Request) (models.Event, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, fmt.Errorf("invalid event id"))
		return models.Event{}, false
	}

	e, err := app.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			app.SendErrorJSON(w, http.StatusNotFound, fmt.Errorf("event %d not found", id))
		} else {
			app.SendErrorJSON(w, http.StatusInternalServerError, err)
		}
		return models.Event{}, false
	}

	return e, true
}

// resolvePerPage applies the per-page preference. An explicit query value
// wins and is remembered in a cookie for later requests; otherwise a
// previously remembered value applies. Values outside the enumerated set are
// left for the repository to reject.
func (app *application) resolvePerPage(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if pp, ok := params["perPage"]; ok {
		if n, err := strconv.Atoi(pp); err == nil && repository.ValidPageSize(n) {
			http.SetCookie(w, &http.Cookie{
				Name:     perPageCookie,
				Value:    pp,
				Path:     "/events",
				HttpOnly: true,
			})
		}
		return
	}

	if c, err := r.Cookie(perPageCookie); err == nil {
		if n, err := strconv.Atoi(c.Value); err == nil && repository.ValidPageSize(n) {
			params["perPage"] = c.Value
		}
	}
}

// queryParamsFromRequest flattens the URL query to the single-valued map the
// repository query builder consumes.
func queryParamsFromRequest(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}
