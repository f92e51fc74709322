package staff

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

// RegisterRoutes monta /employees, /shifts y /time-clock. Todo es para managers.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Group(func(mr chi.Router) {
		mr.Use(middleware.ManagersOnly())

		mr.Route("/employees", func(er chi.Router) {
			er.Post("/", createEmployeeHandler(svc))
			er.Get("/", listEmployeesHandler(svc))
			er.Get("/{employeeID}", getEmployeeHandler(svc))
			er.Post("/{employeeID}/clock-in", clockInHandler(svc))
		})

		mr.Route("/shifts", func(sr chi.Router) {
			sr.Post("/", scheduleShiftHandler(svc))
			sr.Get("/", listShiftsHandler(svc))
		})

		mr.Route("/time-clock", func(tr chi.Router) {
			tr.Get("/{entryID}", getClockEntryHandler(svc))
			tr.Post("/{entryID}/clock-out", clockOutHandler(svc))
		})
	})
}

type employeeRequest struct {
	EmployeeInput
	StartedOn string `json:"started_on"` // YYYY-MM-DD; vacío => hoy
}

func createEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req employeeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.EmployeeInput
		in.StartedOn = dates.Day(svc.now())
		if strings.TrimSpace(req.StartedOn) != "" {
			d, err := dates.DayField("started_on", req.StartedOn)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			in.StartedOn = d
		}

		e, err := svc.CreateEmployee(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, e)
	}
}

func listEmployeesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListEmployees(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
	}
}

type shiftRequest struct {
	ShiftInput
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func scheduleShiftHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shiftRequest
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
		in := req.ShiftInput
		in.StartTime, in.EndTime = start, end

		sh, err := svc.ScheduleShift(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, sh)
	}
}

func listShiftsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID := strings.TrimSpace(r.URL.Query().Get("location_id"))
		if locationID == "" {
			httpx.WriteError(w, r, apperr.FieldValidation("location_id", "location_id is required"))
			return
		}
		day, err := httpx.QueryDay(r, "date", dates.Day(svc.now()))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		list, err := svc.ListShifts(r.Context(), locationID, day)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

type clockRequest struct {
	At string `json:"at"` // ISO-8601; vacío => ahora
}

func (c clockRequest) instant(field string, svc *Service) (time.Time, error) {
	if strings.TrimSpace(c.At) == "" {
		return svc.now().UTC(), nil
	}
	return dates.InstantField(field, c.At)
}

func clockInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clockRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		at, err := req.instant("clock_in", svc)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		c, err := svc.ClockIn(r.Context(), chi.URLParam(r, "employeeID"), at)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, c)
	}
}

func getClockEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetClockEntry(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func clockOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clockRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		at, err := req.instant("clock_out", svc)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		c, err := svc.ClockOut(r.Context(), chi.URLParam(r, "entryID"), at)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}
