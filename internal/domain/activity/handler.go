package activity

import (
	"net/http"
	"strings"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes usa rutas planas: /pets ya está montado como subrouter por
// el módulo pets y un segundo Route("/pets/{petID}") lo taparía.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets/{petID}/activities", logActivityHandler(svc))
	r.Get("/pets/{petID}/activities", listActivitiesHandler(svc))

	r.Post("/pets/{petID}/notes", addNoteHandler(svc))
	r.Get("/pets/{petID}/notes", listNotesHandler(svc))
}

// logActivityHandler godoc
// @Summary Registrar actividad del día
// @Description Comida, paseo, siesta, medicación, incidente... logged_by por defecto es el usuario autenticado.
// @Tags activity
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body LogInput true "Actividad"
// @Success 201 {object} Log
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID}/activities [post]
func logActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in LogInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in.PetID = chi.URLParam(r, "petID")
		if in.LoggedBy == nil {
			in.LoggedBy = currentUser(r)
		}

		l, err := svc.LogActivity(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, l)
	}
}

// listActivitiesHandler godoc
// @Summary Listar actividades de una mascota
// @Tags activity
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param type query string false "Tipos separados por coma (meal,walk,...)"
// @Param booking_id query string false "Solo de una reserva"
// @Param from query string false "RFC3339 o YYYY-MM-DD"
// @Param to query string false "RFC3339 o YYYY-MM-DD"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} Log
// @Router /pets/{petID}/activities [get]
func listActivitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, err := dates.OptionalInstantField("from", q.Get("from"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		to, err := dates.OptionalInstantField("to", q.Get("to"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		filter := ListFilter{
			BookingID: strings.TrimSpace(q.Get("booking_id")),
			From:      from,
			To:        to,
			Limit:     httpx.QueryInt(r, "limit", 0),
		}
		for _, t := range strings.Split(q.Get("type"), ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				filter.Types = append(filter.Types, ActivityType(t))
			}
		}

		list, err := svc.ListLogs(r.Context(), chi.URLParam(r, "petID"), filter)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func addNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NoteInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in.PetID = chi.URLParam(r, "petID")
		if in.CreatedBy == nil {
			in.CreatedBy = currentUser(r)
		}

		n, err := svc.AddNote(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, n)
	}
}

func listNotesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListNotes(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func currentUser(r *http.Request) *string {
	c, ok := middleware.GetClaims(r.Context())
	if !ok || c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}
