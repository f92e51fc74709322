package locations

import (
	"net/http"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/locations", func(lr chi.Router) {
		lr.With(middleware.ManagersOnly()).Post("/", createHandler(svc))
		lr.Get("/", listHandler(svc))
		lr.Get("/{locationID}", getHandler(svc))
	})
}

// createHandler godoc
// @Summary Alta de sede
// @Description Capacidad, tarifa base y descuento por segunda mascota. gst_registered por defecto true.
// @Tags locations
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos de la sede"
// @Success 201 {object} Location
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /locations [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		loc, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, loc)
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc, err := svc.Get(r.Context(), chi.URLParam(r, "locationID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, loc)
	}
}
