package reports

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterRoutes monta /reports para managers. sheets nil => format=xlsx
// responde 400.
func RegisterRoutes(r chi.Router, svc *Service, sheets SpreadsheetWriter) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Use(middleware.ManagersOnly())

		rr.Get("/dashboard", dashboardHandler(svc))
		rr.Get("/occupancy", occupancyHandler(svc, sheets))
		rr.Get("/revenue", revenueHandler(svc, sheets))
		rr.Get("/outstanding", outstandingHandler(svc))
		rr.Get("/package-usage", packageUsageHandler(svc))
		rr.Get("/xero/invoices/{invoiceID}", xeroExportHandler(svc))
		rr.Post("/xero/invoices/{invoiceID}/sync", xeroSyncHandler(svc))
	})
}

// dashboardHandler godoc
// @Summary Dashboard de la sede
// @Tags reports
// @Produce json
// @Param location_id query string true "Sede"
// @Param date query string false "YYYY-MM-DD (por defecto hoy)"
// @Success 200 {object} Dashboard
// @Failure 403 {object} map[string]string
// @Router /reports/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, err := requiredQuery(r, "location_id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		day, err := httpx.QueryDay(r, "date", dates.Day(svc.now()))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		d, err := svc.LocationDashboard(r.Context(), locationID, &day)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, d)
	}
}

// occupancyHandler godoc
// @Summary Ocupación por día
// @Tags reports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param location_id query string true "Sede"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param format query string false "json | xlsx"
// @Success 200 {array} OccupancyRow
// @Router /reports/occupancy [get]
func occupancyHandler(svc *Service, sheets SpreadsheetWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, err := requiredQuery(r, "location_id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		from, to, err := reportRange(r, svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		rows, err := svc.OccupancyReport(r.Context(), locationID, from, to)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if !wantsXLSX(r) {
			httpx.WriteJSON(w, http.StatusOK, rows)
			return
		}
		if sheets == nil {
			httpx.WriteError(w, r, errNoSpreadsheet)
			return
		}
		loc, err := svc.deps.Locations.Get(r.Context(), locationID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		var buf bytes.Buffer
		if err := sheets.WriteOccupancy(&buf, loc.Name, rows); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		writeXLSX(w, fmt.Sprintf("occupancy-%s.xlsx", from.Format(dates.DayLayout)), buf.Bytes())
	}
}

func revenueHandler(svc *Service, sheets SpreadsheetWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := reportRange(r, svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		rev, err := svc.RevenueReport(r.Context(), from, to, httpx.QueryOptional(r, "location_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if !wantsXLSX(r) {
			httpx.WriteJSON(w, http.StatusOK, rev)
			return
		}
		if sheets == nil {
			httpx.WriteError(w, r, errNoSpreadsheet)
			return
		}
		var buf bytes.Buffer
		if err := sheets.WriteRevenue(&buf, rev); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		writeXLSX(w, fmt.Sprintf("revenue-%s.xlsx", from.Format(dates.DayLayout)), buf.Bytes())
	}
}

func outstandingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.OutstandingBalances(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func packageUsageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := requiredQuery(r, "client_id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		u, err := svc.PackageUsageReport(r.Context(), clientID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

func xeroExportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.ExportForXero(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

// xeroSyncHandler godoc
// @Summary Publicar factura en el sistema contable
// @Tags reports
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Success 200 {object} XeroInvoice
// @Failure 400 {object} map[string]string "Accounting integration is not configured"
// @Failure 502 {object} map[string]string
// @Router /reports/xero/invoices/{invoiceID}/sync [post]
func xeroSyncHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.SyncToAccounting(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			var appErr *apperr.Error
			if !errors.As(err, &appErr) {
				httpx.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": "accounting sync failed"})
				return
			}
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

var errNoSpreadsheet = apperr.FieldValidation("format", "xlsx export is not available")

func wantsXLSX(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("format")), "xlsx")
}

func writeXLSX(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func requiredQuery(r *http.Request, key string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return "", apperr.FieldValidation(key, key+" is required")
	}
	return v, nil
}

// reportRange: start_date por defecto hace 30 días, end_date por defecto hoy.
func reportRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	today := dates.Day(now)
	from, err := httpx.QueryDay(r, "start_date", today.AddDate(0, 0, -30))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := httpx.QueryDay(r, "end_date", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
