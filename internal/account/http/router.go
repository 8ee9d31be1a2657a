package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/skylight-ar/account-service/internal/account/service"
	"github.com/skylight-ar/account-service/internal/account/store"
	"github.com/skylight-ar/account-service/pkg/httpx"
	"github.com/skylight-ar/account-service/pkg/slogx"

	_ "github.com/skylight-ar/account-service/api/accountd" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	RegistrationService *service.RegistrationService
	SessionService      *service.SessionService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRegistration()
	r.registerLogin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Skylight Account Service API
//	@version		0.1.0
//	@description	Account registration and sign-in for the Skylight AR client.
//	@description	Registration is a two-step flow: credentials first, then a
//	@description	six-digit passcode emailed to the address being claimed.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRegistration() {
	registerHandler := &RegisterHandler{RegistrationService: r.RegistrationService}
	verifyHandler := &VerifyHandler{RegistrationService: r.RegistrationService}
	resendHandler := &ResendHandler{RegistrationService: r.RegistrationService}

	// POST /register - strict: each call can hit the identity provider and
	// the mail service.
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register/verify - strict: passcode guessing surface.
	r.Mux.Handle("POST /v1/register/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register/resend - moderate: each call sends an email.
	r.Mux.Handle("POST /v1/register/resend",
		httpx.Chain(resendHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerLogin() {
	loginHandler := &LoginHandler{SessionService: r.SessionService}

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
