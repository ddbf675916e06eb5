package http

import (
	"log/slog"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tracehealth/trace/api/auth" // Swagger docs
	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/httpx"
	"github.com/tracehealth/trace/pkg/jwtx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	SignupService *service.SignupService
	LoginService  *service.LoginService
	ResetService  *service.ResetService
	AdminService  *service.AdminService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain. Sentry sits outermost so it sees panics
	// from every other layer.
	r.middlewares = []httpx.Middleware{
		sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle,
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TRACE Account Service API
//	@version		0.1.0
//	@description	Email-verified registration, login and password reset for TRACE users and administrators.
//	@description
//	@description				Session tokens are JWTs verifiable against the JWKS endpoint.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signup := &SignupHandler{SignupService: r.SignupService}
	r.Mux.Handle("POST /api/auth/signup", http.HandlerFunc(signup.HandleSignup))
	r.Mux.Handle("POST /api/auth/verify-otp", http.HandlerFunc(signup.HandleVerifyOTP))

	r.Mux.Handle("POST /api/auth/login", &LoginHandler{LoginService: r.LoginService})

	reset := &PasswordResetHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/forgot-password", http.HandlerFunc(reset.HandleForgot))
	r.Mux.Handle("POST /api/auth/reset-password", http.HandlerFunc(reset.HandleReset))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	// Every admin endpoint needs a session issued to an Admin-namespace identity.
	admin := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireNamespace(string(domain.NamespaceAdmin)),
		)
	}

	r.Mux.Handle("GET /api/admin/users", admin(h.HandleListUsers))
	r.Mux.Handle("DELETE /api/admin/users/{id}", admin(h.HandleDeleteUser))
	r.Mux.Handle("GET /api/admin/analytics", admin(h.HandleAnalytics))
}

func (r *Router) registerSystem() {
	h := &SystemHandler{
		Store:   r.store,
		Keys:    r.keys,
		Version: r.buildVersion,
		Started: r.startTime,
	}
	r.Mux.HandleFunc("GET /.well-known/jwks.json", h.HandleJWKS)
	r.Mux.HandleFunc("GET /livez", h.HandleLivez)
	r.Mux.HandleFunc("GET /readyz", h.HandleReadyz)
}
