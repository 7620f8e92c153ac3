package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"code.cloudfoundry.org/lager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appstrength "github.com/bryanwahyu/passwise/internal/application/strength"
	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
	"github.com/bryanwahyu/passwise/internal/middleware"
)

// request defaults, same as the web client sends when fields are omitted
const (
	defaultMinScore          = 80
	defaultTimeThresholdDays = 365 * 100
	maxBodyBytes             = 16 << 10
	sessionHeader            = "X-Client-Session"
)

// Options carries the cross-cutting pieces wired around the handlers.
type Options struct {
	Logger            lager.Logger
	Metrics           *middleware.Metrics
	Checkers          map[string]middleware.HealthChecker
	APIKeys           map[string]string // key -> tenant; empty disables auth
	RequestsPerMinute int
	AllowedOrigins    []string
}

type Router struct {
	svc      *appstrength.Service
	inflight *appstrength.Inflight
	metrics  *middleware.Metrics
	limiter  *middleware.RateLimiter
	logger   lager.Logger
	mux      http.Handler
}

// NewRouter builds the HTTP handler. Close releases the rate limiter.
func NewRouter(svc *appstrength.Service, opts Options) *Router {
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = lager.NewLogger("passwise")
	}
	r := &Router{
		svc:      svc,
		inflight: appstrength.NewInflight(),
		metrics:  opts.Metrics,
		logger:   opts.Logger.Session("http"),
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer(r.logger))
	mux.Use(middleware.RequestLogger(r.logger))
	mux.Use(opts.Metrics.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", sessionHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	if opts.RequestsPerMinute > 0 {
		r.limiter = middleware.NewRateLimiter(opts.RequestsPerMinute)
		mux.Use(r.limiter.Middleware)
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", opts.Metrics.Handler)

	// unversioned routes used by the browser client
	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Post("/generate", r.wrap(r.handleGenerate))

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.RequireTenant)
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/generate", r.wrap(r.handleGenerate))
		rt.Get("/analyses", r.wrap(r.handleListAnalyses))
	})

	r.mux = mux
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close stops background work started by NewRouter.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domain.ErrEmptyPassword), errors.Is(err, domain.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrConstraintsUnmet):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, appstrength.ErrSuperseded):
			r.metrics.ObserveSuperseded()
			writeError(w, http.StatusConflict, "superseded")
		case errors.Is(err, context.Canceled):
			// client went away; nobody reads the body
			writeError(w, 499, "client closed request")
		default:
			r.logger.Error("handler-failed", err, lager.Data{
				"path":       req.URL.Path,
				"request-id": middleware.GetRequestID(req.Context()),
			})
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func tenantOf(req *http.Request) string {
	if t := middleware.GetTenantFromContext(req.Context()); t != "" {
		return t
	}
	return middleware.DefaultTenant
}

func decode(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

// POST /analyze, /v1/{tenant}/analyze
// Body: {"password": "..."}
// X-Client-Session: a newer request on the same session supersedes this one.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.ValidatePassword(body.Password); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	tenant := tenantOf(req)
	key := ""
	if session := req.Header.Get(sessionHeader); session != "" {
		if err := middleware.ValidateSessionID(session); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
		}
		key = tenant + "/" + session
	}
	ctx, release := r.inflight.Begin(req.Context(), key)
	defer release()

	report, err := r.svc.Analyze(ctx, tenant, body.Password)
	if errors.Is(context.Cause(ctx), appstrength.ErrSuperseded) {
		return appstrength.ErrSuperseded
	}
	if err != nil {
		return err
	}
	r.metrics.ObserveAnalysis(report.IsCompromised)
	return writeJSON(w, http.StatusOK, report)
}

// POST /generate, /v1/{tenant}/generate
// Body: {"min_score": 80, "time_threshold_days": 36500}, both optional.
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		MinScore          *int `json:"min_score"`
		TimeThresholdDays *int `json:"time_threshold_days"`
	}
	if req.ContentLength != 0 {
		if err := decode(w, req, &body); err != nil {
			return err
		}
	}
	gr := domain.GenerationRequest{MinScore: defaultMinScore, TimeThresholdDays: defaultTimeThresholdDays}
	if body.MinScore != nil {
		gr.MinScore = *body.MinScore
	}
	if body.TimeThresholdDays != nil {
		gr.TimeThresholdDays = *body.TimeThresholdDays
	}
	if err := middleware.ValidateGeneration(gr.MinScore, gr.TimeThresholdDays); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	res, err := r.svc.Generate(req.Context(), gr)
	r.metrics.ObserveGeneration(err)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// GET /v1/{tenant}/analyses?page=&page_size=
func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	page := middleware.ParsePage(q.Get("page"))
	size := middleware.ValidateLimit(atoi(q.Get("page_size")))

	list, err := r.svc.List(req.Context(), tenantOf(req), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}
