package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/aussiebroadwan/mibanco/pkg/metrics"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/aussiebroadwan/mibanco/api/banco" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// quietPaths are polled by health checkers and scrapers and logged at debug only.
var quietPaths = []string{"/livez", "/readyz", "/health", "/metrics"}

// Options configures the parts of the router that vary per deployment.
type Options struct {
	AllowedOrigins     []string
	CompressionMinSize int

	// Limiters builds one limiter per route. Defaults to in-memory.
	Limiters httpx.LimiterBackend

	// TrustedProxies are the reverse proxies whose X-Forwarded-For is
	// believed. Empty means limits are keyed on the connection peer.
	TrustedProxies []netip.Prefix

	// Metrics and Gatherer are optional; /metrics is mounted only when
	// Gatherer is set.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limiters     httpx.LimiterBackend
	clientIP     httpx.KeyExtractor
	gatherer     prometheus.Gatherer

	store              store.Store
	UserService        *service.UserService
	BeneficiaryService *service.BeneficiaryService
	TransferService    *service.TransferService
}

func NewRouter(st store.Store, buildVersion string, logger *slog.Logger, opts Options) (*Router, error) {
	compress, err := httpx.Compress(opts.CompressionMinSize)
	if err != nil {
		return nil, err
	}

	limiters := opts.Limiters
	if limiters == nil {
		limiters = httpx.MemoryBackend()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limiters:     limiters,
		clientIP:     httpx.ClientIPExtractor(opts.TrustedProxies),
		gatherer:     opts.Gatherer,
		store:        st,
	}

	// Outermost first. Recovery sits inside the logger so a panic is logged
	// with its req_id and still produces an http_request line.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, quietPaths...),
		httpx.Recovery(),
		httpx.SecurityHeaders(),
		httpx.CORS(opts.AllowedOrigins),
		compress,
	}

	// Innermost, so it shares its *http.Request with the mux and can read
	// the matched pattern.
	if opts.Metrics != nil {
		r.middlewares = append(r.middlewares, opts.Metrics.Middleware())
	}

	return r, nil
}

func (r *Router) ApplyRoutes() {
	r.registerUsuarios()
	r.registerCuentas()
	r.registerTransferencias()
	r.registerBancos()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mi Banco API
//	@version		1.0.0
//	@description	Backend of the Mi Banco demo: user registration and login, saved transfer
//	@description	beneficiaries and transfer history. Every response is wrapped in an
//	@description	{ok, body} envelope.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/mibanco
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8001
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit returns a rate limit middleware with its own limiter for scope.
func (r *Router) limit(scope string, cfg httpx.RateLimitConfig, key httpx.KeyExtractor) httpx.Middleware {
	return httpx.RateLimitMiddleware(r.limiters(scope, cfg), cfg, key)
}

func (r *Router) registerUsuarios() {
	h := &UsuarioHandler{UserService: r.UserService}

	// POST /usuario - strict rate limit by IP (public signup)
	r.Mux.Handle("POST /usuario",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limit("usuario", httpx.StrictLimit, r.clientIP),
		),
	)

	// POST /usuario/login - strict rate limit by IP (password guessing)
	r.Mux.Handle("POST /usuario/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.limit("login", httpx.StrictLimit, r.clientIP),
		),
	)
}

func (r *Router) registerCuentas() {
	h := &CuentasHandler{BeneficiaryService: r.BeneficiaryService}

	r.Mux.Handle("GET /cuentas",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.limit("cuentas_list", httpx.LenientLimit, r.clientIP),
		),
	)
	r.Mux.Handle("POST /cuentas",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.limit("cuentas_create", httpx.ModerateLimit, r.clientIP),
		),
	)
}

func (r *Router) registerTransferencias() {
	h := &TransferenciasHandler{TransferService: r.TransferService}

	r.Mux.Handle("GET /transferencias",
		httpx.Chain(http.HandlerFunc(h.HandleHistory),
			r.limit("transferencias_list", httpx.LenientLimit, r.clientIP),
		),
	)
	r.Mux.Handle("POST /transferencias",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.limit("transferencias_create", httpx.ModerateLimit, r.clientIP),
		),
	)
}

func (r *Router) registerBancos() {
	r.Mux.Handle("GET /bancos",
		httpx.Chain(BancosHandler(),
			r.limit("bancos", httpx.PublicLimit, r.clientIP),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(),
			r.limit("livez", httpx.PublicLimit, r.clientIP),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.store),
			r.limit("readyz", httpx.PublicLimit, r.clientIP),
		),
	)
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.store, r.buildVersion, r.startTime, time.Now),
			r.limit("health", httpx.PublicLimit, r.clientIP),
		),
	)

	if r.gatherer != nil {
		r.Mux.Handle("GET /metrics", metrics.Handler(r.gatherer))
	}
}
