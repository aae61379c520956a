package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bloodlink/internal/client/config"
	"github.com/dmitrijs2005/bloodlink/internal/client/router"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newBackend(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/login/{role}/", func(w http.ResponseWriter, req *http.Request) {
			reply := map[string]any{"access": "access-" + chi.URLParam(req, "role"), "refresh": "refresh-1"}
			if chi.URLParam(req, "role") == "hospital" {
				reply["status"] = true
			}
			writeJSON(w, http.StatusOK, reply)
		})
		setup(r)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer, string) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = old })
}

func newTestApp(t *testing.T, srv *httptest.Server, dbPath string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL + "/api"
	cfg.DatabasePath = dbPath
	cfg.RequestTimeout = 2 * time.Second

	out := &bytes.Buffer{}
	a, err := newApp(cfg, strings.NewReader(""), out, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, out
}

func runScript(a *App, lines ...string) {
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), a)
}

func TestApp_HospitalFlow(t *testing.T) {
	stubPassword(t, "secret123")

	var (
		mu  sync.Mutex
		put map[string]any
	)
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/blood-units/summary/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"blood_type": "A+", "total_quantity": 3, "low_stock_alert": true},
				{"blood_type": "O-", "total_quantity": 12, "low_stock_alert": false},
			})
		})
		r.Get("/blood-requests/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 7, "blood_type": "O-", "quantity": 2, "priority_level": "urgent", "status": "Pending", "hospital_name": "City"},
			})
		})
		r.Put("/blood-requests/{id}/", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]any
			_ = json.NewDecoder(req.Body).Decode(&body)
			mu.Lock()
			put = body
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"id": 7})
		})
	})

	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))
	runScript(a,
		"inventory",
		"login hospital", "staff@city.org",
		"inventory",
		"requests",
		"edit 7", "Completed", "4",
		"save",
		"dashboard",
		"exit",
	)

	text := out.String()
	assert.Contains(t, text, "inventory is not available, redirected to hospital_login. Use 'login hospital'.")
	assert.Contains(t, text, "Logged in as hospital_staff.")
	assert.Contains(t, text, "LOW STOCK")
	assert.Contains(t, text, "Blood request 7 saved (Completed, 4 units).")
	assert.Contains(t, text, "Units in stock: 15 (1 blood types low)")
	assert.Contains(t, text, "Pending requests: 1 (1 urgent)")
	assert.Contains(t, text, "Bye!")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]any{"status": "Completed", "quantity": float64(4)}, put)
	assert.Equal(t, router.HospitalStaff, a.router.State())
}

func TestApp_DonorOffers(t *testing.T) {
	stubPassword(t, "secret123")
	srv := newBackend(t, func(chi.Router) {})

	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))
	runScript(a,
		"login donor", "ann@example.com",
		"inventory",
		"receive", "O+", "2 units", "City Hospital", "Main St", "2025-03-01",
		"offers",
	)
	assert.Contains(t, out.String(), "inventory is not available, redirected to hospital_login.")
	assert.Contains(t, out.String(), "City Hospital")

	offers, err := a.donationService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	id := offers[0].ID

	out.Reset()
	runScript(a,
		"directions "+id,
		"accept "+id,
		"clear "+id,
		"directions "+id,
		"unaccept "+id,
		"clear "+id,
		"offers",
	)
	text := out.String()
	assert.Contains(t, text, "Error: offer is not accepted")
	assert.Contains(t, text, "Donation request accepted.")
	assert.Contains(t, text, "Error: an accepted offer cannot be cleared")
	assert.Contains(t, text, "https://www.google.com/maps/dir/?api=1&destination=City+Hospital%2C+Main+St")
	assert.Contains(t, text, "Acceptance cancelled.")
	assert.Contains(t, text, "Donation request cleared.")
	assert.Contains(t, text, "No donation requests.")
}

func TestApp_RejectedSessionLogsOut(t *testing.T) {
	stubPassword(t, "secret123")
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/blood-units/summary/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired"})
		})
		r.Post("/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is blacklisted"})
		})
	})

	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))
	runScript(a, "login hospital", "staff@city.org", "inventory")

	text := out.String()
	assert.Contains(t, text, "Your session has expired or was rejected. Please log in again.")
	assert.Contains(t, text, "Redirected to hospital_login. Use 'login hospital'.")
	assert.Equal(t, router.Unauthenticated, a.router.State())
	assert.Equal(t, router.ViewHospitalLogin, a.router.Current())

	_, ok := a.authService.CurrentRole()
	assert.False(t, ok)
	stored, err := a.repos.Session.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestApp_ForbiddenKeepsSession(t *testing.T) {
	stubPassword(t, "secret123")
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/blood-requests/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusForbidden, map[string]any{"detail": "Only approved hospitals can create blood requests."})
		})
	})

	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))
	runScript(a,
		"login hospital", "staff@city.org",
		"newrequest", "O-", "2", "",
		"whoami",
	)

	text := out.String()
	assert.Contains(t, text, "Only approved hospitals can create blood requests.")
	assert.NotContains(t, text, "Redirected to")
	assert.NotContains(t, text, "session has expired")
	assert.Contains(t, text, "Role: hospital_staff")
	assert.Equal(t, router.HospitalStaff, a.router.State())

	role, ok := a.authService.CurrentRole()
	assert.True(t, ok)
	assert.Equal(t, "hospital_staff", string(role))
	stored, err := a.repos.Session.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestApp_SessionRestoredOnStart(t *testing.T) {
	stubPassword(t, "secret123")
	srv := newBackend(t, func(chi.Router) {})
	dbPath := filepath.Join(t.TempDir(), "app.db")

	first, _ := newTestApp(t, srv, dbPath)
	runScript(first, "login donor", "ann@example.com")
	first.Close()

	second, out := newTestApp(t, srv, dbPath)
	assert.Equal(t, router.Donor, second.router.State())
	assert.Equal(t, router.ViewDonorDashboard, second.router.Current())

	runScript(second, "logout", "whoami")
	assert.Contains(t, out.String(), "Logged out.")
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestApp_HelpAndUsage(t *testing.T) {
	srv := newBackend(t, func(chi.Router) {})
	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))

	runScript(a, "help", "frobnicate")
	text := out.String()
	assert.Contains(t, text, "login [donor|delivery|hospital]")
	assert.NotContains(t, text, "addunit")
	assert.Contains(t, text, "Unknown command: frobnicate")

	a.router.Login("hospital_staff")
	out.Reset()
	runScript(a, "help", "units", "editunit abc")
	text = out.String()
	assert.Contains(t, text, "addunit")
	assert.NotContains(t, text, "offers")
	assert.Contains(t, text, "Usage: units <blood type>")
	assert.Contains(t, text, "Please correct the following:\n  id:")
}

func TestApp_LoginValidatesBeforeNetwork(t *testing.T) {
	stubPassword(t, "")
	called := false
	r := chi.NewRouter()
	r.Post("/api/login/{role}/", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	a, out := newTestApp(t, srv, filepath.Join(t.TempDir(), "app.db"))
	runScript(a, "login donor", "not-an-email")

	assert.False(t, called)
	assert.Contains(t, out.String(), "Please correct the following:")
	assert.Equal(t, router.Unauthenticated, a.router.State())
}
