package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/service"
	"github.com/aussiebroadwan/clientcred/internal/clientcred/store"
	"github.com/aussiebroadwan/clientcred/pkg/httpx"
	"github.com/aussiebroadwan/clientcred/pkg/jwtx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"

	_ "github.com/aussiebroadwan/clientcred/api/clientcred" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Scopes understood by the admin API. clients:check is held by the
// token-issuance component, the others by human operators and tooling.
const (
	ScopeClientsRead  = "clients:read"
	ScopeClientsWrite = "clients:write"
	ScopeClientsCheck = "clients:check"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	ClientService    *service.ClientService
	AllowListService *service.AllowListService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
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

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerMigration()
	r.registerAccessCheck()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Credential Service API
//	@version		0.1.0
//	@description	Manages the lifecycle of machine-client credentials: registration, duplication
//	@description	for secret rotation, deletion, legacy migration, and network allow-list checks.
//	@description
//	@description				Client secrets are returned exactly once at creation time and stored only as argon2id hashes.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clientcred
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// withOperatorLog rebinds the request-scoped logger with the
// authenticated operator so audit lines carry the acting username.
// Must sit after AuthnMiddleware in a chain.
func withOperatorLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if operator := httpx.OperatorFromCtx(req.Context()); operator != "" {
			ctx := slogx.WithContext(req.Context(), slogx.FromContext(req.Context()).With("username", operator))
			req = req.WithContext(ctx)
		}
		next.ServeHTTP(w, req)
	})
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	// POST /v1/base-clients - mints a secret, strict rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsWrite),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.StrictLimit),
	)

	// GET /v1/base-clients - read projection, moderate rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsRead),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.ModerateLimit),
	)

	// POST /v1/clients/{clientId}/duplicate - mints a secret, strict rate limit
	securedDuplicate := httpx.Chain(http.HandlerFunc(h.HandleDuplicate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsWrite),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.StrictLimit),
	)

	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsWrite),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.ModerateLimit),
	)

	securedExists := httpx.Chain(http.HandlerFunc(h.HandleExists),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsRead),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.ModerateLimit),
	)

	securedDuplicates := httpx.Chain(http.HandlerFunc(h.HandleDuplicates),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsRead),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.ModerateLimit),
	)

	securedDeployment := httpx.Chain(http.HandlerFunc(h.HandleDeployment),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsWrite),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/base-clients", securedCreate)
	r.Mux.Handle("GET /v1/base-clients", securedList)
	r.Mux.Handle("POST /v1/clients/{clientId}/duplicate", securedDuplicate)
	r.Mux.Handle("DELETE /v1/clients/{clientId}", securedDelete)
	r.Mux.Handle("GET /v1/clients/exists/{clientId}", securedExists)
	r.Mux.Handle("GET /v1/clients/duplicates/{clientId}", securedDuplicates)
	r.Mux.Handle("PUT /v1/clients/{clientId}/deployment", securedDeployment)
}

func (r *Router) registerMigration() {
	h := &MigrationHandler{ClientService: r.ClientService}

	// POST /v1/migrate-client - handles raw secrets, strict rate limit
	secured := httpx.Chain(http.HandlerFunc(h.HandleMigrate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsWrite),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.StrictLimit),
	)

	r.Mux.Handle("POST /v1/migrate-client", secured)
}

func (r *Router) registerAccessCheck() {
	h := &AccessCheckHandler{AllowListService: r.AllowListService}

	// POST /v1/access-check - called on every token grant by the issuance
	// component, so the limit is lenient
	secured := httpx.Chain(http.HandlerFunc(h.HandleCheck),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(ScopeClientsCheck),
		withOperatorLog,
		httpx.RateLimitByOperator(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/access-check", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
