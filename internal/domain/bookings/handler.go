package bookings

import (
	"net/http"
	"strings"
	"time"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/bookings", func(br chi.Router) {
		br.Post("/", createBookingHandler(svc))
		br.Get("/", listBookingsHandler(svc))
		br.Get("/{bookingID}", getBookingHandler(svc))
		br.Post("/{bookingID}/check-in", checkInHandler(svc))
		br.Post("/{bookingID}/check-out", checkOutHandler(svc))
	})

	r.Get("/calendar", calendarHandler(svc))

	r.Route("/waitlist", func(wr chi.Router) {
		wr.Get("/", listWaitlistHandler(svc))
		wr.Get("/{entryID}", getWaitlistHandler(svc))
		wr.Post("/{entryID}/promote", promoteWaitlistHandler(svc))
	})

	r.Post("/recurring-bookings", createRecurringHandler(svc))
}

type createBookingRequest struct {
	CreateInput
	StartTime string `json:"start_time"` // ISO-8601
	EndTime   string `json:"end_time"`   // ISO-8601
}

// createBookingHandler godoc
// @Summary Crear reserva
// @Description Valida vacunas y capacidad. Si la sede está llena cada mascota queda en lista de espera (status=waitlisted, 202). Si hay lugar se emite la factura (status=booked, 201).
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Api-Key header string false "API key del staff"
// @Param Authorization header string false "Bearer token"
// @Param payload body createBookingRequest true "Reserva; start_time y end_time en ISO-8601"
// @Success 201 {object} Result
// @Success 202 {object} Result
// @Failure 400 {object} map[string]string "vacunas vencidas / end_time <= start_time / créditos insuficientes"
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func createBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		start, err := dates.InstantField("start_time", req.StartTime)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		end, err := dates.InstantField("end_time", req.EndTime)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.CreateInput
		in.StartTime, in.EndTime = start, end
		if in.CreatedBy == nil {
			in.CreatedBy = currentUser(r)
		}

		res, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		status := http.StatusCreated
		if res.Status == ResultWaitlisted {
			status = http.StatusAccepted
		}
		httpx.WriteJSON(w, status, res)
	}
}

// listBookingsHandler godoc
// @Summary Listar reservas
// @Description Con location_id devuelve las reservas del día (date, por defecto hoy). Con client_id devuelve las del cliente.
// @Tags bookings
// @Produce json
// @Param location_id query string false "Sede"
// @Param date query string false "YYYY-MM-DD"
// @Param client_id query string false "Cliente"
// @Param upcoming query bool false "Solo reservas que no terminaron (con client_id; por defecto true)"
// @Param limit query int false "Máximo (con client_id)"
// @Success 200 {array} View
// @Router /bookings [get]
func listBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if clientID := strings.TrimSpace(q.Get("client_id")); clientID != "" {
			list, err := svc.ListForClient(r.Context(), ClientQuery{
				ClientID:     clientID,
				UpcomingOnly: httpx.QueryBool(r, "upcoming", true),
				Limit:        httpx.QueryInt(r, "limit", 0),
			})
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, list)
			return
		}

		locationID, day, err := locationDay(r, svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		list, err := svc.List(r.Context(), locationID, day)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, v)
	}
}

type checkInRequest struct {
	CheckInInput
	CheckInTime string `json:"check_in_time"` // ISO-8601; vacío => ahora
}

// checkInHandler godoc
// @Summary Check-in de una mascota
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Param payload body checkInRequest true "Check-in"
// @Success 200 {object} CheckIn
// @Failure 400 {object} map[string]string "Pet is not part of this booking"
// @Router /bookings/{bookingID}/check-in [post]
func checkInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkInRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		at, err := instantOrNow(req.CheckInTime, "check_in_time", svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.CheckInInput
		in.BookingID = chi.URLParam(r, "bookingID")
		in.CheckInTime = at
		if in.StaffUserID == nil {
			in.StaffUserID = currentUser(r)
		}

		c, err := svc.CheckIn(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

type checkOutRequest struct {
	CheckOutInput
	CheckOutTime string `json:"check_out_time"` // ISO-8601; vacío => ahora
}

func checkOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkOutRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		at, err := instantOrNow(req.CheckOutTime, "check_out_time", svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.CheckOutInput
		in.BookingID = chi.URLParam(r, "bookingID")
		in.CheckOutTime = at

		c, err := svc.CheckOut(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func calendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, day, err := locationDay(r, svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		cal, err := svc.CalendarView(r.Context(), locationID, day)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, cal)
	}
}

func listWaitlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, day, err := locationDay(r, svc.now())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		list, err := svc.ListWaitlist(r.Context(), locationID, day)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getWaitlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetWaitlist(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
	}
}

// promoteWaitlistHandler godoc
// @Summary Promover una entrada de lista de espera
// @Description Crea la reserva si ahora hay lugar; si no, la entrada queda pendiente.
// @Tags bookings
// @Produce json
// @Param entryID path string true "ID de la entrada"
// @Success 201 {object} Result
// @Failure 400 {object} map[string]string "Location is at capacity for the requested time / Waitlist entry already converted"
// @Failure 404 {object} map[string]string
// @Router /waitlist/{entryID}/promote [post]
func promoteWaitlistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.PromoteWaitlist(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, res)
	}
}

type recurringRequest struct {
	RecurringInput
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD opcional
}

func createRecurringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recurringRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		start, err := dates.DayField("start_date", req.StartDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		end, err := dates.OptionalDayField("end_date", req.EndDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.RecurringInput
		in.StartDate, in.EndDate = start, end

		rb, err := svc.CreateRecurring(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, rb)
	}
}

// locationDay lee location_id (obligatorio) y date (por defecto hoy).
func locationDay(r *http.Request, now time.Time) (string, time.Time, error) {
	locationID := strings.TrimSpace(r.URL.Query().Get("location_id"))
	if locationID == "" {
		return "", time.Time{}, apperr.FieldValidation("location_id", "location_id is required")
	}
	day, err := httpx.QueryDay(r, "date", dates.Day(now))
	if err != nil {
		return "", time.Time{}, err
	}
	return locationID, day, nil
}

func instantOrNow(s, field string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return now.UTC(), nil
	}
	return dates.InstantField(field, s)
}

func currentUser(r *http.Request) *string {
	c, ok := middleware.GetClaims(r.Context())
	if !ok || c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}
