package users

import (
	"net/http"
	"time"

	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/httpx"
	"doggy-daycare/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta el login. issuer nil => solo se devuelve la API key.
func RegisterPublicRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Post("/auth/login", loginHandler(svc, issuer))
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/me", meHandler(svc))

		ur.With(middleware.ManagersOnly()).Post("/", registerHandler(svc))
		ur.With(middleware.ManagersOnly()).Get("/", listHandler(svc))
		ur.With(middleware.ManagersOnly()).Get("/{userID}", getHandler(svc))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	LoginResult
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// loginHandler godoc
// @Summary Login de staff
// @Description Valida email y password. Devuelve la API key del usuario y, si el servicio firma tokens, un JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 403 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		out := loginResponse{LoginResult: res}

		if issuer != nil {
			u, err := svc.Get(r.Context(), res.UserID)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			token, exp, err := issuer.Issue(u.Claims())
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			out.Token, out.ExpiresAt = token, &exp
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// registerHandler godoc
// @Summary Alta de usuario
// @Tags users
// @Accept json
// @Produce json
// @Param X-Api-Key header string false "API key de un manager"
// @Param payload body RegisterInput true "Datos del usuario"
// @Success 201 {object} User
// @Failure 400 {object} map[string]string
// @Router /users [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		u, err := svc.Register(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, u)
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), httpx.QueryOptional(r, "location_id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

// meHandler devuelve las claims del request; el usuario completo solo si
// existe en la base (los headers de dev no tienen fila).
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Unauthorized(w)
			return
		}
		u, err := svc.Get(r.Context(), claims.UserID)
		if apperr.IsNotFound(err) {
			httpx.WriteJSON(w, http.StatusOK, map[string]any{
				"id":   claims.UserID,
				"role": claims.Role,
			})
			return
		}
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}
