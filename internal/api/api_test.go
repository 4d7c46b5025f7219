package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hajorau/saveenergy/internal/api"
	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/internal/store"
	"github.com/hajorau/saveenergy/internal/store/drivers/sqlite"
	"github.com/hajorau/saveenergy/pkg/cryptox"
	"github.com/hajorau/saveenergy/pkg/tokenx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "api-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestServer wires the full stack against a throwaway database and
// returns the server plus the backing store.
func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL",
		filepath.Join(t.TempDir(), "test.db"))

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec := &tokenx.Codec{Secret: []byte("api-test-secret"), TTL: time.Hour}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := api.NewRouter(codec, "*", "test", st, logger)
	router.UserService = &service.UserService{Store: st, Tokens: codec}
	router.CalcService = &service.CalcService{Store: st}
	router.AdminService = &service.AdminService{Store: st, Secret: "topsecret"}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"email":    email,
		"password": "super-secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"email":    email,
		"password": "super-secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func sampleInputs() map[string]any {
	return map[string]any{
		"wrg_vorhanden":       true,
		"vdot_m3h":            1000,
		"strompreis_eur_kwh":  0.30,
		"waermepreis_eur_kwh": 0.10,
		"zeitreduktion_h_d":   2,
		"betriebstage_d_a":    250,
	}
}

func TestFullFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	token := registerAndLogin(t, srv, "flow@example.com")

	// Submit a calculation and check the reference outputs.
	resp := postJSON(t, srv.URL+"/calc", token, sampleInputs())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submit struct {
		ID      int64 `json:"id"`
		Outputs struct {
			Heat float64 `json:"waerme_kwh_a"`
			Elec float64 `json:"strom_kwh_a"`
			Cost float64 `json:"euro_a"`
			CO2  float64 `json:"co2_t"`
		} `json:"outputs"`
	}
	decodeJSON(t, resp, &submit)
	require.Positive(t, submit.ID)
	require.Equal(t, 723.0, submit.Outputs.Heat)
	require.Equal(t, 400.0, submit.Outputs.Elec)
	require.Equal(t, 192.0, submit.Outputs.Cost)
	require.Equal(t, 0.44, submit.Outputs.CO2)

	// The record shows up in the list.
	resp = get(t, srv.URL+"/calc", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	require.Equal(t, submit.ID, list[0].ID)

	// PDF export.
	resp = get(t, fmt.Sprintf("%s/calc/%d/export/pdf", srv.URL, submit.ID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	// CSV export: header plus one row.
	resp = get(t, srv.URL+"/calc/export/csv", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "id;created_at;"))
}

func TestRegisterValidationAndConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	// Short password names the field.
	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"email":    "short@example.com",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var fieldErr struct {
		Field string `json:"field"`
	}
	decodeJSON(t, resp, &fieldErr)
	require.Equal(t, "password", fieldErr.Field)

	resp = postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"email":    "dup@example.com",
		"password": "super-secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Same address, different casing.
	resp = postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"email":    "DUP@example.com",
		"password": "super-secret",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", "", map[string]string{
		"email":    "login@example.com",
		"password": "super-secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/calc", "/calc/export/csv", "/calc/1/export/pdf"} {
		resp := get(t, srv.URL+path, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer", path)
		resp.Body.Close()
	}

	resp := get(t, srv.URL+"/calc", "not-a-real-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmitValidationNamesField(t *testing.T) {
	srv, _ := newTestServer(t)
	token := registerAndLogin(t, srv, "validate@example.com")

	in := sampleInputs()
	in["vdot_m3h"] = -5

	resp := postJSON(t, srv.URL+"/calc", token, in)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var fieldErr struct {
		Field string `json:"field"`
	}
	decodeJSON(t, resp, &fieldErr)
	require.Equal(t, "vdot_m3h", fieldErr.Field)
}

func TestExportForeignRecordIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	ownerToken := registerAndLogin(t, srv, "owner@example.com")
	otherToken := registerAndLogin(t, srv, "other@example.com")

	resp := postJSON(t, srv.URL+"/calc", ownerToken, sampleInputs())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submit struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, resp, &submit)

	resp = get(t, fmt.Sprintf("%s/calc/%d/export/pdf", srv.URL, submit.ID), otherToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminReset(t *testing.T) {
	srv, st := newTestServer(t)
	token := registerAndLogin(t, srv, "reset@example.com")

	resp := postJSON(t, srv.URL+"/calc", token, sampleInputs())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/admin/reset?secret=wrong", "", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/admin/reset?secret=topsecret", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	count, err := st.Users().CountUsers(t.Context())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv.URL+"/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	decodeJSON(t, resp, &health)
	require.Equal(t, "ok", health.Status)

	resp = get(t, srv.URL+"/readyz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
