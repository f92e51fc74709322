package catalog

import (
	"net/http"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.With(middleware.ManagersOnly()).Post("/", createOfferingHandler(svc))
		sr.Get("/", listOfferingsHandler(svc))
		sr.Get("/{serviceID}", getOfferingHandler(svc))
	})

	r.Route("/packages", func(pr chi.Router) {
		pr.With(middleware.ManagersOnly()).Post("/", createPackageHandler(svc))
		pr.Get("/", listPackagesHandler(svc))
		pr.Get("/{packageID}", getPackageHandler(svc))
	})

	r.Route("/client-packages", func(cr chi.Router) {
		cr.Post("/", sellPackageHandler(svc))
		cr.Get("/", listClientPackagesHandler(svc))
		cr.Get("/{clientPackageID}", getClientPackageHandler(svc))
		cr.With(middleware.ManagersOnly()).Post("/{clientPackageID}/adjust", adjustClientPackageHandler(svc))
	})
}

// createOfferingHandler godoc
// @Summary Alta de servicio adicional
// @Description location_id vacío => disponible en todas las sedes. gst_applicable por defecto true.
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body OfferingInput true "Servicio"
// @Success 201 {object} Offering
// @Failure 400 {object} map[string]string
// @Router /services [post]
func createOfferingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in OfferingInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		o, err := svc.CreateOffering(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, o)
	}
}

func listOfferingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListOfferings(r.Context(), httpx.QueryOptional(r, "location_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getOfferingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetOffering(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, o)
	}
}

func createPackageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in PackageInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		p, err := svc.CreatePackage(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, p)
	}
}

func listPackagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListPackages(r.Context(), httpx.QueryOptional(r, "location_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getPackageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPackage(r.Context(), chi.URLParam(r, "packageID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

type sellRequest struct {
	SellInput
	PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD; vacío => hoy
	ExpiryDate   string `json:"expiry_date"`   // YYYY-MM-DD opcional
}

// sellPackageHandler godoc
// @Summary Vender un pase a un cliente
// @Description Sin expiry_date el vencimiento es purchase_date + valid_days del pase.
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body sellRequest true "Venta"
// @Success 201 {object} ClientPackage
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /client-packages [post]
func sellPackageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sellRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		purchase := dates.Day(svc.now())
		if req.PurchaseDate != "" {
			d, err := dates.DayField("purchase_date", req.PurchaseDate)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			purchase = d
		}
		expiry, err := dates.OptionalDayField("expiry_date", req.ExpiryDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		req.SellInput.PurchaseDate = purchase
		req.SellInput.ExpiryDate = expiry

		cp, err := svc.SellPackage(r.Context(), req.SellInput)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, cp)
	}
}

func listClientPackagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListClientPackages(r.Context(), r.URL.Query().Get("client_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getClientPackageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cp, err := svc.GetClientPackage(r.Context(), chi.URLParam(r, "clientPackageID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, cp)
	}
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func adjustClientPackageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		cp, err := svc.AdjustClientPackage(r.Context(), chi.URLParam(r, "clientPackageID"), req.Delta)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, cp)
	}
}
