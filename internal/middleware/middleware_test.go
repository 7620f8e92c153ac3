package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/go-chi/chi/v5"
	. "github.com/onsi/gomega"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(GetTenantFromContext(r.Context())))
}

func TestAPIKeyAuth(t *testing.T) {
	g := NewWithT(t)
	h := APIKeyAuth(map[string]string{"k-acme": "acme"})(http.HandlerFunc(okHandler))

	cases := []struct {
		name   string
		path   string
		header map[string]string
		code   int
		body   string
	}{
		{"bearer", "/analyze", map[string]string{"Authorization": "Bearer k-acme"}, 200, "acme"},
		{"x-api-key", "/analyze", map[string]string{"X-API-Key": "k-acme"}, 200, "acme"},
		{"missing", "/analyze", nil, 401, "missing API key"},
		{"wrong", "/analyze", map[string]string{"Authorization": "nope"}, 401, "invalid API key"},
		{"health bypass", "/health", nil, 200, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, nil)
		for k, v := range tc.header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		g.Expect(rec.Code).To(Equal(tc.code), tc.name)
		g.Expect(rec.Body.String()).To(ContainSubstring(tc.body), tc.name)
	}
}

func TestRequireTenant(t *testing.T) {
	g := NewWithT(t)
	r := chi.NewRouter()
	r.Route("/v1/{tenant}", func(r chi.Router) {
		r.Use(RequireTenant)
		r.Get("/x", okHandler)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/acme/x", nil))
	g.Expect(rec.Code).To(Equal(200))
	g.Expect(rec.Body.String()).To(Equal("acme"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bad!tenant/x", nil))
	g.Expect(rec.Code).To(Equal(http.StatusBadRequest))

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/x", nil)
	req = req.WithContext(context.WithValue(req.Context(), TenantKey, "other"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	g.Expect(rec.Code).To(Equal(http.StatusForbidden))
}

func TestTokenBucketRefills(t *testing.T) {
	g := NewWithT(t)
	tb := NewTokenBucket(2, 1)
	now := tb.lastRefill

	g.Expect(tb.allowAt(now)).To(BeTrue())
	g.Expect(tb.allowAt(now)).To(BeTrue())
	g.Expect(tb.allowAt(now)).To(BeFalse())
	g.Expect(tb.allowAt(now.Add(500 * time.Millisecond))).To(BeFalse())
	g.Expect(tb.allowAt(now.Add(1100 * time.Millisecond))).To(BeTrue())
}

func TestRateLimiterMiddleware(t *testing.T) {
	g := NewWithT(t)
	rl := NewRateLimiter(1)
	defer rl.Close()
	h := rl.Middleware(http.HandlerFunc(okHandler))

	send := func(path, addr string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	g.Expect(send("/analyze", "10.0.0.1:1111")).To(Equal(200))
	g.Expect(send("/analyze", "10.0.0.1:2222")).To(Equal(http.StatusTooManyRequests))
	g.Expect(send("/analyze", "10.0.0.2:1111")).To(Equal(200))
	g.Expect(send("/health", "10.0.0.1:1111")).To(Equal(200))
}

func TestRateLimiterCloseStopsCleanup(t *testing.T) {
	g := NewWithT(t)
	rl := NewRateLimiter(10)
	rl.Close()
	rl.Close()

	g.Eventually(rl.done).Should(BeClosed())
}

func TestValidators(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ValidatePassword("pässwörd")).To(Succeed())
	g.Expect(ValidatePassword(strings.Repeat("a", MaxPasswordLength+1))).NotTo(Succeed())
	g.Expect(ValidatePassword("\xff")).NotTo(Succeed())
	g.Expect(ValidatePassword("a\x00b")).NotTo(Succeed())

	g.Expect(ValidateGeneration(80, 3650)).To(Succeed())
	g.Expect(ValidateGeneration(101, 0)).NotTo(Succeed())
	g.Expect(ValidateGeneration(50, -1)).NotTo(Succeed())

	g.Expect(ValidateSessionID("tab-1.a:b")).To(Succeed())
	g.Expect(ValidateSessionID("has space")).NotTo(Succeed())

	g.Expect(ValidateTenantID("acme_1")).To(Succeed())
	g.Expect(ValidateTenantID("")).NotTo(Succeed())

	g.Expect(ValidateLimit(0)).To(Equal(20))
	g.Expect(ValidateLimit(500)).To(Equal(100))
	g.Expect(ParsePage("3")).To(Equal(3))
	g.Expect(ParsePage("-2")).To(Equal(1))
	g.Expect(ParsePage("184467440737095517")).To(Equal(MaxPage))
	g.Expect(ParsePage("99999999999999999999")).To(Equal(MaxPage))
	g.Expect(ParsePage("abc")).To(Equal(1))
	g.Expect(SanitizeString(" ab\x00c\x07 ")).To(Equal("abc"))
}

func TestHealthHandler(t *testing.T) {
	g := NewWithT(t)
	h := HealthHandler(map[string]HealthChecker{
		"redis": CheckerFunc(func(context.Context) error { return nil }),
		"db":    CheckerFunc(func(context.Context) error { return errors.New("down") }),
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	g.Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
	var body HealthStatus
	g.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
	g.Expect(body.Status).To(Equal("unhealthy"))
	g.Expect(body.Checks["db"].Message).To(Equal("down"))
	g.Expect(body.Checks["redis"].Status).To(Equal("healthy"))
}

func TestMetricsCountsOutcomes(t *testing.T) {
	g := NewWithT(t)
	m := NewMetrics()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	m.ObserveAnalysis(true)
	m.ObserveAnalysis(false)
	m.ObserveGeneration(errors.New("x"))

	snap := m.Snapshot()
	g.Expect(snap["requests_total"]).To(Equal(uint64(2)))
	g.Expect(snap["requests_failed"]).To(Equal(uint64(1)))
	g.Expect(snap["analyses_total"]).To(Equal(uint64(2)))
	g.Expect(snap["compromised_hits"]).To(Equal(uint64(1)))
	g.Expect(snap["generations_failed"]).To(Equal(uint64(1)))
	g.Expect(snap["requests_in_progress"]).To(Equal(int64(0)))
}

func TestRequestIDAndRecoverer(t *testing.T) {
	g := NewWithT(t)
	logger := lagertest.NewTestLogger("test")
	h := RequestID(RequestLogger(logger)(Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	g.Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	g.Expect(rec.Header().Get("X-Request-ID")).To(Equal("abc-123"))
	g.Expect(logger.LogMessages()).To(ContainElement("test.panic"))
	g.Expect(logger.LogMessages()).To(ContainElement("test.request-failed"))
}
