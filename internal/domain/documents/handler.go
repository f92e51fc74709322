package documents

import (
	"net/http"
	"strings"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/documents", func(dr chi.Router) {
		dr.With(middleware.ManagersOnly()).Post("/", createDocumentHandler(svc))
		dr.Get("/", listDocumentsHandler(svc))
		dr.Get("/{documentID}", getDocumentHandler(svc))
		dr.Post("/{documentID}/assignments", assignDocumentHandler(svc))
	})

	r.Route("/document-assignments", func(ar chi.Router) {
		ar.Get("/", listAssignmentsHandler(svc))
		ar.Get("/{assignmentID}", getAssignmentHandler(svc))
		ar.Post("/{assignmentID}/complete", completeAssignmentHandler(svc))
	})
}

func createDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		d, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, d)
	}
}

func listDocumentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "documentID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, d)
	}
}

type assignRequest struct {
	AssignInput
	DueDate string `json:"due_date"` // YYYY-MM-DD opcional
}

// assignDocumentHandler godoc
// @Summary Asignar documento a un cliente
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "ID del documento"
// @Param payload body assignRequest true "client_id y due_date opcional"
// @Success 201 {object} Assignment
// @Failure 404 {object} map[string]string
// @Router /documents/{documentID}/assignments [post]
func assignDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		due, err := dates.OptionalDayField("due_date", req.DueDate)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in := req.AssignInput
		in.DocumentID = chi.URLParam(r, "documentID")
		in.DueDate = due

		a, err := svc.Assign(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

func listAssignmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimSpace(r.URL.Query().Get("client_id"))
		if clientID == "" {
			httpx.WriteError(w, r, apperr.FieldValidation("client_id", "client_id is required"))
			return
		}
		list, err := svc.ListAssignments(r.Context(), clientID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func getAssignmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

type completeRequest struct {
	CompleteInput
	SignedAt string `json:"signed_at"` // ISO-8601; vacío => ahora
}

func completeAssignmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		signed := svc.now().UTC()
		if strings.TrimSpace(req.SignedAt) != "" {
			t, err := dates.InstantField("signed_at", req.SignedAt)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			signed = t
		}
		in := req.CompleteInput
		in.AssignmentID = chi.URLParam(r, "assignmentID")
		in.SignedAt = signed

		a, err := svc.Complete(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}
