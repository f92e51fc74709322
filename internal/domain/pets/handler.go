package pets

import (
	"net/http"
	"strings"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", addPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Post("/{petID}/archive", archivePetHandler(svc))

		pr.Post("/{petID}/vaccinations", recordVaccinationHandler(svc))
		pr.Get("/{petID}/vaccinations", listVaccinationsHandler(svc))
		pr.Get("/{petID}/vaccinations/{vaccinationID}", getVaccinationHandler(svc))
	})
}

type addPetRequest struct {
	AddInput
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
}

// addPetHandler godoc
// @Summary Alta de mascota
// @Description Registra un perro para un cliente existente.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body addPetRequest true "Datos de la mascota; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} Pet
// @Failure 400 {object} map[string]string "invalid json / birth_date inválido / reglas de negocio"
// @Failure 404 {object} map[string]string "Client not found"
// @Router /pets [post]
func addPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		bd, err := dates.OptionalDayField("birth_date", req.BirthDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		req.AddInput.BirthDate = bd

		p, err := svc.Add(r.Context(), req.AddInput)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, p)
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Param client_id query string false "Filtra por cliente"
// @Param include_archived query bool false "Incluye archivadas"
// @Success 200 {array} Pet
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			ClientID:        r.URL.Query().Get("client_id"),
			IncludeArchived: httpx.QueryBool(r, "include_archived", false),
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func archivePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Archive(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

type vaccinationRequest struct {
	VaccinationInput
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD
}

// recordVaccinationHandler godoc
// @Summary Registrar vacuna
// @Description La mascota no puede reservarse si su último vencimiento es anterior al inicio de la reserva.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body vaccinationRequest true "Vacuna; expiry_date en formato YYYY-MM-DD"
// @Success 201 {object} Vaccination
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID}/vaccinations [post]
func recordVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccinationRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		exp, err := dates.DayField("expiry_date", req.ExpiryDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		req.VaccinationInput.PetID = chi.URLParam(r, "petID")
		req.VaccinationInput.ExpiryDate = exp

		v, err := svc.RecordVaccination(r.Context(), req.VaccinationInput)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, v)
	}
}

func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListVaccinations(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetVaccination(r.Context(), chi.URLParam(r, "vaccinationID"))
		if err == nil && v.PetID != strings.TrimSpace(chi.URLParam(r, "petID")) {
			err = apperr.NotFound("Vaccination record")
		}
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, v)
	}
}
