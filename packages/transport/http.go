package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/l3montree-dev/honeypot-dashboard/packages/analysis"
	"github.com/l3montree-dev/honeypot-dashboard/packages/apiclient"
	"github.com/l3montree-dev/honeypot-dashboard/packages/session"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
	"github.com/l3montree-dev/honeypot-dashboard/packages/utils"
)

const dataSourceHeader = "X-Data-Source"

type dataSource interface {
	HoneypotLogs(ctx context.Context) apiclient.Result[[]types.AttackRecord]
	AttackAnalytics(ctx context.Context) apiclient.Result[types.Analytics]
}

type viewGetter interface {
	Latest(view string) (types.Snapshot, bool)
	History(view string) []types.Snapshot
}

type HTTPConfig struct {
	Port     int
	Sessions *session.Manager
	Views    viewGetter
	Data     dataSource

	// realtime handlers, optional
	SSE       http.Handler
	Websocket http.Handler
}

type httpTransport struct {
	port       int
	sessions   *session.Manager
	views      viewGetter
	data       dataSource
	sse        http.Handler
	websocket  http.Handler
	httpServer *http.Server
}

type sessionKey struct{}

func NewHTTP(config HTTPConfig) *httpTransport {
	h := &httpTransport{
		port:      config.Port,
		sessions:  config.Sessions,
		views:     config.Views,
		data:      config.Data,
		sse:       config.SSE,
		websocket: config.Websocket,
	}
	h.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", h.port),
		Handler:     h.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	return h
}

// Set default HTTP headers
func setDefaultHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func cacheControlMiddleware(maxAge int, staleWhileRevalidateMaxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// responses depend on the session, so they are private
			w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d, stale-while-revalidate=%d", maxAge, staleWhileRevalidateMaxAge))

			// Continue with the next handler
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	arr, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	setDefaultHeaders(w)
	w.WriteHeader(status)
	_, err = w.Write(arr)
	if err != nil {
		slog.Warn("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// browsers cannot set headers on EventSource and WebSocket requests
	return r.URL.Query().Get("token")
}

func sessionFromContext(ctx context.Context) session.Session {
	s, _ := ctx.Value(sessionKey{}).(session.Session)
	return s
}

// requireSession rejects requests without a valid session. With adminOnly
// the session also needs the admin role.
func (h *httpTransport) requireSession(adminOnly bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.sessions.Lookup(tokenFromRequest(r))
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		if adminOnly && !s.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
	})
}

func (h *httpTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	// views refresh every few seconds, allow a short reuse
	cachingMiddleware := cacheControlMiddleware(5, 30)
	user := func(next http.Handler) http.Handler { return h.requireSession(false, next) }
	admin := func(next http.Handler) http.Handler { return h.requireSession(true, next) }

	mux.Handle("GET /health", h.handleHealth())
	mux.Handle("POST /api/login", h.handleLogin())
	mux.Handle("POST /api/register", h.handleRegister())
	mux.Handle("POST /api/logout", user(h.handleLogout()))
	mux.Handle("GET /api/session", user(h.handleSession()))
	mux.Handle("GET /api/dashboard", user(cachingMiddleware(h.handleView(types.ViewDashboard))))
	mux.Handle("GET /api/dashboard/history", user(cachingMiddleware(h.handleHistory(types.ViewDashboard))))
	mux.Handle("GET /api/admin", admin(cachingMiddleware(h.handleView(types.ViewAdmin))))
	mux.Handle("GET /api/admin/history", admin(cachingMiddleware(h.handleHistory(types.ViewAdmin))))
	mux.Handle("GET /api/logs", user(cachingMiddleware(h.handleLogs())))
	mux.Handle("GET /api/analytics", user(cachingMiddleware(h.handleAnalytics())))
	mux.Handle("GET /metrics", promhttp.Handler())
	if h.sse != nil {
		mux.Handle("GET /realtime", user(h.sse))
	}
	if h.websocket != nil {
		mux.Handle("GET /ws", user(h.websocket))
	}
	return mux
}

// ListenAndServe blocks until the server is closed.
func (h *httpTransport) ListenAndServe() error {
	slog.Info("HTTP transport listening", "port", h.port)
	return h.httpServer.ListenAndServe()
}

func (h *httpTransport) Shutdown(ctx context.Context) error {
	return h.httpServer.Shutdown(ctx)
}

func (h *httpTransport) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *httpTransport) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		s, err := h.sessions.Login(req.Username, req.Password)
		if errors.Is(err, session.ErrInvalidCredentials) {
			slog.Warn("failed login", "username", req.Username, "remote", utils.RemoteIP(r))
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		slog.Info("login", "username", s.Username, "role", s.Role)
		writeJSON(w, http.StatusOK, s)
	}
}

func (h *httpTransport) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.Logout(sessionFromContext(r.Context()).Token)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *httpTransport) handleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionFromContext(r.Context()).Values())
	}
}

func (h *httpTransport) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg session.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := session.ValidateRegistration(reg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "registration successful"})
	}
}

// handleView returns the latest snapshot of a view
func (h *httpTransport) handleView(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := h.views.Latest(view)
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "no data yet")
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func (h *httpTransport) handleHistory(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.views.History(view))
	}
}

// handleLogs returns the attack records, filtered by the q and level parameters
func (h *httpTransport) handleLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := h.data.HoneypotLogs(r.Context())
		level := r.URL.Query().Get("level")
		if level == "" {
			level = analysis.AllLevels
		}
		records := analysis.FilterRecords(res.Data, r.URL.Query().Get("q"), level)
		w.Header().Set(dataSourceHeader, res.Source.String())
		writeJSON(w, http.StatusOK, records)
	}
}

func (h *httpTransport) handleAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := h.data.AttackAnalytics(r.Context())
		w.Header().Set(dataSourceHeader, res.Source.String())
		writeJSON(w, http.StatusOK, res.Data)
	}
}
