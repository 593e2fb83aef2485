package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/l3montree-dev/honeypot-dashboard/packages/apiclient"
	"github.com/l3montree-dev/honeypot-dashboard/packages/session"
	"github.com/l3montree-dev/honeypot-dashboard/packages/severity"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

type fakeData struct{}

func (fakeData) HoneypotLogs(ctx context.Context) apiclient.Result[[]types.AttackRecord] {
	return apiclient.Result[[]types.AttackRecord]{
		Data: []types.AttackRecord{
			{ID: 1, IP: "10.0.0.1", Type: "SSH Brute Force", Severity: severity.High},
			{ID: 2, IP: "10.0.0.2", Type: "HTTP Request", Severity: severity.Low},
			{ID: 3, IP: "10.0.0.3", Type: "SQL Injection", Severity: severity.Critical},
		},
		Source: apiclient.Live,
	}
}

func (fakeData) AttackAnalytics(ctx context.Context) apiclient.Result[types.Analytics] {
	return apiclient.Result[types.Analytics]{Data: apiclient.MockAnalytics(), Source: apiclient.Fallback}
}

func newTestTransport(t *testing.T) (*httpTransport, *ViewStore) {
	t.Helper()
	auth, err := session.NewAuthenticator(session.DefaultAccounts()...)
	if err != nil {
		t.Fatal(err)
	}
	views := NewViewStore(3)
	h := NewHTTP(HTTPConfig{
		Port:      0,
		Sessions:  session.NewManager(auth),
		Views:     views,
		Data:      fakeData{},
		SSE:       NewSSE(),
		Websocket: NewWebsocket(),
	})
	return h, views
}

func do(h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body) // nolint
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, username, password string) session.Session {
	t.Helper()
	rec := do(h, http.MethodPost, "/api/login", "", loginRequest{Username: username, Password: password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login of %s failed with %d", username, rec.Code)
	}
	var s session.Session
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestHealth(t *testing.T) {
	h, _ := newTestTransport(t)
	rec := do(h.Handler(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestLoginFlow(t *testing.T) {
	h, _ := newTestTransport(t)
	handler := h.Handler()

	rec := do(handler, http.MethodPost, "/api/login", "", loginRequest{Username: "admin", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong password, got %d", rec.Code)
	}

	s := login(t, handler, "admin", "admin123")
	if !s.LoggedIn || s.Role != session.RoleAdmin || s.Token == "" {
		t.Fatalf("unexpected session %+v", s)
	}

	rec = do(handler, http.MethodGet, "/api/session", s.Token, nil)
	var values map[string]string
	json.NewDecoder(rec.Body).Decode(&values) // nolint
	if values[session.KeyUserRole] != "admin" || values[session.KeyIsLoggedIn] != "true" {
		t.Errorf("unexpected session values %v", values)
	}

	rec = do(handler, http.MethodPost, "/api/logout", s.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 on logout, got %d", rec.Code)
	}
	rec = do(handler, http.MethodGet, "/api/session", s.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestAdminViewRequiresAdminRole(t *testing.T) {
	h, views := newTestTransport(t)
	handler := h.Handler()
	views.Store(types.Snapshot{View: types.ViewAdmin, Time: time.Now(), Data: types.AdminView{APIStatus: types.APIStatusDemo}})

	if rec := do(handler, http.MethodGet, "/api/admin", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	user := login(t, handler, "user", "user123")
	if rec := do(handler, http.MethodGet, "/api/admin", user.Token, nil); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a user, got %d", rec.Code)
	}

	admin := login(t, handler, "admin", "admin123")
	rec := do(handler, http.MethodGet, "/api/admin", admin.Token, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"apiStatus":"demo"`) {
		t.Errorf("unexpected admin response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDashboardView(t *testing.T) {
	h, views := newTestTransport(t)
	handler := h.Handler()
	user := login(t, handler, "user", "user123")

	if rec := do(handler, http.MethodGet, "/api/dashboard", user.Token, nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before the first poll, got %d", rec.Code)
	}

	for i := 0; i < 5; i++ {
		views.Store(types.Snapshot{
			View: types.ViewDashboard,
			Time: time.Now(),
			Data: types.DashboardView{Stats: types.Summary{TotalAttacks: i}, APIStatus: types.APIStatusConnected},
		})
	}

	rec := do(handler, http.MethodGet, "/api/dashboard", user.Token, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"totalAttacks":4`) {
		t.Errorf("expected the latest snapshot, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Cache-Control"), "private") {
		t.Errorf("expected a private cache header, got %q", rec.Header().Get("Cache-Control"))
	}

	rec = do(handler, http.MethodGet, "/api/dashboard/history", user.Token, nil)
	var history []json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Errorf("expected the history to be capped at 3, got %d", len(history))
	}
}

func TestLogsFilter(t *testing.T) {
	h, _ := newTestTransport(t)
	handler := h.Handler()
	user := login(t, handler, "user", "user123")

	cases := []struct {
		query string
		ids   []int
	}{
		{"/api/logs", []int{1, 2, 3}},
		{"/api/logs?level=critical", []int{3}},
		{"/api/logs?q=10.0.0.2", []int{2}},
		{"/api/logs?q=ssh&level=all", []int{1}},
		{"/api/logs?q=ssh&level=low", []int{}},
		{"/api/logs?level=bogus", []int{}},
	}
	for _, c := range cases {
		rec := do(handler, http.MethodGet, c.query, user.Token, nil)
		if rec.Header().Get(dataSourceHeader) != "live" {
			t.Errorf("%s: expected live data source, got %q", c.query, rec.Header().Get(dataSourceHeader))
		}
		var records []types.AttackRecord
		if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
			t.Fatal(err)
		}
		if len(records) != len(c.ids) {
			t.Errorf("%s: expected %v, got %+v", c.query, c.ids, records)
			continue
		}
		for i, id := range c.ids {
			if records[i].ID != id {
				t.Errorf("%s: expected id %d at %d, got %d", c.query, id, i, records[i].ID)
			}
		}
	}
}

func TestAnalyticsDataSource(t *testing.T) {
	h, _ := newTestTransport(t)
	handler := h.Handler()
	user := login(t, handler, "user", "user123")

	rec := do(handler, http.MethodGet, "/api/analytics", user.Token, nil)
	if rec.Code != http.StatusOK || rec.Header().Get(dataSourceHeader) != "fallback" {
		t.Errorf("unexpected analytics response %d %q", rec.Code, rec.Header().Get(dataSourceHeader))
	}
}

func TestRegister(t *testing.T) {
	h, _ := newTestTransport(t)
	handler := h.Handler()

	rec := do(handler, http.MethodPost, "/api/register", "", session.Registration{
		Username: "analyst", Password: "Secret1!", ConfirmPassword: "Secret1!",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(handler, http.MethodPost, "/api/register", "", session.Registration{
		Username: "analyst", Password: "Secret1!", ConfirmPassword: "Secret2!",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for mismatching passwords, got %d", rec.Code)
	}
}

func canListen(t *testing.T) bool {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return false
	}
	l.Close()
	return true
}

// dialWebsocket connects a logged in client to ws and waits until ws counts want clients.
func dialWebsocket(t *testing.T, ws *websocketTransport, want int) *websocket.Conn {
	t.Helper()
	h, _ := newTestTransport(t)
	h.websocket = ws
	handler := h.Handler()
	user := login(t, handler, "user", "user123")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + user.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for ws.Count() < want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if ws.Count() != want {
		t.Fatalf("expected %d clients, got %d", want, ws.Count())
	}
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) (view string, data string) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) // nolint
	var got struct {
		View string `json:"view"`
		Data string `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	return got.View, got.Data
}

func TestWebsocketPush(t *testing.T) {
	if !canListen(t) {
		t.Skip("cannot open a local listener")
	}
	ws := NewWebsocket()
	conn := dialWebsocket(t, ws, 1)

	ws.Listen() <- types.Snapshot{View: types.ViewAdmin, Time: time.Now(), Data: "hello"}

	if view, data := readSnapshot(t, conn); view != types.ViewAdmin || data != "hello" {
		t.Errorf("unexpected message %s %s", view, data)
	}
}

func TestWebsocketStalledClientDoesNotBlockOthers(t *testing.T) {
	if !canListen(t) {
		t.Skip("cannot open a local listener")
	}
	ws := NewWebsocket()
	// a client whose send buffer is never drained
	ws.clientsLock.Lock()
	ws.clients[nil] = make(chan types.Snapshot)
	ws.clientsLock.Unlock()

	conn := dialWebsocket(t, ws, 2)
	for i := 0; i < 3; i++ {
		ws.Listen() <- types.Snapshot{View: types.ViewDashboard, Time: time.Now(), Data: "tick"}
		if view, data := readSnapshot(t, conn); view != types.ViewDashboard || data != "tick" {
			t.Errorf("unexpected message %s %s", view, data)
		}
	}

	// registering clients still works while one is stalled
	dialWebsocket(t, ws, 3)
}

func TestWebsocketRequiresSession(t *testing.T) {
	h, _ := newTestTransport(t)
	rec := do(h.Handler(), http.MethodGet, "/ws", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
