package inventory

import (
	"net/http"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/inventory", func(ir chi.Router) {
		ir.With(middleware.ManagersOnly()).Post("/", createItemHandler(svc))
		ir.Get("/", listItemsHandler(svc))
		ir.Get("/{itemID}", getItemHandler(svc))
		ir.Post("/{itemID}/adjust", adjustHandler(svc))
		ir.Get("/{itemID}/transactions", listTransactionsHandler(svc))
	})
}

func createItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		it, err := svc.CreateItem(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, it)
	}
}

func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListItems(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		it, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, it)
	}
}

// adjustHandler godoc
// @Summary Ajustar stock
// @Description quantity_change negativo para ventas/consumo. El stock nunca queda negativo.
// @Tags inventory
// @Accept json
// @Produce json
// @Param itemID path string true "ID del ítem"
// @Param payload body AdjustInput true "Ajuste"
// @Success 200 {object} Item
// @Failure 400 {object} map[string]string "Inventory cannot be negative"
// @Failure 404 {object} map[string]string
// @Router /inventory/{itemID}/adjust [post]
func adjustHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in AdjustInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in.ItemID = chi.URLParam(r, "itemID")
		if in.StaffUserID == nil {
			if c, ok := middleware.GetClaims(r.Context()); ok && c.UserID != "" {
				in.StaffUserID = &c.UserID
			}
		}

		it, err := svc.Adjust(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, it)
	}
}

func listTransactionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListTransactions(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}
