package billing

import (
	"net/http"
	"strings"

	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Post("/{invoiceID}/payments", recordPaymentHandler(svc))
	})
}

// listInvoicesHandler godoc
// @Summary Listar facturas
// @Tags billing
// @Produce json
// @Param client_id query string false "Filtra por cliente"
// @Param status query string false "Estados separados por coma (draft,issued,paid)"
// @Success 200 {array} Invoice
// @Router /invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{ClientID: strings.TrimSpace(r.URL.Query().Get("client_id"))}
		for _, st := range strings.Split(r.URL.Query().Get("status"), ",") {
			if st = strings.TrimSpace(st); st != "" {
				filter.Statuses = append(filter.Statuses, Status(st))
			}
		}
		list, err := svc.List(r.Context(), filter)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.Get(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

type paymentRequest struct {
	PaymentInput
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD; vacío => hoy
}

// recordPaymentHandler godoc
// @Summary Registrar pago
// @Description Descuenta del saldo; con saldo <= 0 la factura pasa a paid. Se admite sobrepago.
// @Tags billing
// @Accept json
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Param payload body paymentRequest true "Pago"
// @Success 201 {object} Invoice
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/payments [post]
func recordPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		paid := dates.Day(svc.now())
		if req.PaymentDate != "" {
			d, err := dates.DayField("payment_date", req.PaymentDate)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			paid = d
		}
		req.PaymentInput.InvoiceID = chi.URLParam(r, "invoiceID")
		req.PaymentInput.PaymentDate = paid

		inv, err := svc.RecordPayment(r.Context(), req.PaymentInput)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, inv)
	}
}
