package router

import (
	"net/http"

	_ "doggy-daycare/docs"
	"doggy-daycare/internal/daycare"
	"doggy-daycare/internal/domain/activity"
	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/domain/documents"
	"doggy-daycare/internal/domain/inventory"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/domain/reports"
	"doggy-daycare/internal/domain/staff"
	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/middleware"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	System *daycare.System
	Logger logger.Logger

	// Verifier de Bearer tokens; puede ser nil (solo API key / dev).
	Verifier auth.AuthVerifier
	// Issuer firma el token devuelto por /auth/login; nil => login sin token.
	Issuer auth.TokenIssuer
	// DevAuth habilita X-Debug-User-ID / X-Debug-Role.
	DevAuth bool

	// Spreadsheet para ?format=xlsx en reportes; puede ser nil.
	Spreadsheet reports.SpreadsheetWriter
}

func NewRouter(opts Options) http.Handler {
	sys := opts.System
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)

	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier:   opts.Verifier,
		APIKeys:    sys.Users,
		DevHeaders: opts.DevAuth,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(api chi.Router) {
		users.RegisterPublicRoutes(api, sys.Users, opts.Issuer)

		api.Group(func(pr chi.Router) {
			pr.Use(middleware.StaffOnly())

			// Rutas por módulo
			users.RegisterRoutes(pr, sys.Users)
			locations.RegisterRoutes(pr, sys.Locations)
			clients.RegisterRoutes(pr, sys.Clients)
			pets.RegisterRoutes(pr, sys.Pets)
			activity.RegisterRoutes(pr, sys.Activity)
			catalog.RegisterRoutes(pr, sys.Catalog)
			inventory.RegisterRoutes(pr, sys.Inventory)
			bookings.RegisterRoutes(pr, sys.Bookings)
			billing.RegisterRoutes(pr, sys.Billing)
			crm.RegisterRoutes(pr, sys.CRM)
			documents.RegisterRoutes(pr, sys.Documents)
			staff.RegisterRoutes(pr, sys.Staff)
			reports.RegisterRoutes(pr, sys.Reports, opts.Spreadsheet)
		})
	})

	return r
}
