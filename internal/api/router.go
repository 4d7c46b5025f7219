package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/hajorau/saveenergy/api/docs" // Swagger docs
	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/internal/store"
	"github.com/hajorau/saveenergy/pkg/httpx"
	"github.com/hajorau/saveenergy/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.TokenVerifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService  *service.UserService
	CalcService  *service.CalcService
	AdminService *service.AdminService
}

func NewRouter(
	verifier httpx.TokenVerifier,
	frontendOrigin, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: frontendOrigin != "*",
	})

	// CORS sits outside the access log so preflights are visible too.
	r.middlewares = []httpx.Middleware{
		corsHandler.Handler,
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCalc()
	r.registerExport()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			SaveEnergy API
//	@version		0.1.0
//	@description	Backend for the SaveEnergy Energieeffizienz Rechner: user accounts,
//	@description	energy savings calculations and PDF/CSV export.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Signed bearer token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints get the strict per-IP limit (brute force).
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(&RegisterHandler{UserService: r.UserService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{UserService: r.UserService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerCalc() {
	r.Mux.Handle("POST /calc",
		httpx.Chain(&CalcSubmitHandler{CalcService: r.CalcService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /calc",
		httpx.Chain(&CalcListHandler{CalcService: r.CalcService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerExport() {
	r.Mux.Handle("GET /calc/{id}/export/pdf",
		httpx.Chain(&ExportPDFHandler{CalcService: r.CalcService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /calc/export/csv",
		httpx.Chain(&ExportCSVHandler{CalcService: r.CalcService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("POST /admin/reset",
		httpx.Chain(&AdminResetHandler{AdminService: r.AdminService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
