package crm

import (
	"net/http"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Post("/", sendNotificationHandler(svc))
		nr.Get("/", listNotificationsHandler(svc))
	})
	r.Route("/messages", func(mr chi.Router) {
		mr.Post("/", logMessageHandler(svc))
		mr.Get("/", listMessagesHandler(svc))
	})
}

// sendNotificationHandler godoc
// @Summary Enviar notificación a un cliente
// @Description Si el canal falla la notificación queda registrada con status failed.
// @Tags crm
// @Accept json
// @Produce json
// @Param payload body NotificationInput true "Notificación"
// @Success 201 {object} Notification
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Client not found"
// @Router /notifications [post]
func sendNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NotificationInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		n, err := svc.SendNotification(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, n)
	}
}

func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListNotifications(r.Context(), r.URL.Query().Get("client_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func logMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in MessageInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if in.StaffUserID == nil && in.Direction == Outbound {
			if c, ok := middleware.GetClaims(r.Context()); ok && c.UserID != "" {
				in.StaffUserID = &c.UserID
			}
		}
		m, err := svc.LogMessage(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, m)
	}
}

func listMessagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListMessages(r.Context(), r.URL.Query().Get("client_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}
