package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvcrn/hax-poster/internal/credentials"
)

type memoryStore struct {
	rec *credentials.Record
}

func (m *memoryStore) Load() (*credentials.Record, error) {
	if m.rec == nil {
		return nil, credentials.ErrNotConfigured
	}
	return m.rec, nil
}

func (m *memoryStore) Save(rec *credentials.Record) error {
	m.rec = rec
	return nil
}

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newTestServer(store credentials.Store) *Server {
	s := New(zerolog.Nop(), store, "secret-key")
	s.now = func() time.Time { return now }
	return s
}

func do(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

var bearer = map[string]string{"Authorization": "Bearer secret-key"}

func TestHealth(t *testing.T) {
	rr := do(newTestServer(&memoryStore{}), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(newTestServer(&memoryStore{}), http.MethodPost, "/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestNotFound(t *testing.T) {
	rr := do(newTestServer(&memoryStore{}), http.MethodGet, "/v1/anything", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"bad format", map[string]string{"Authorization": "secret-key"}, http.StatusUnauthorized},
		{"wrong key", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"bearer", bearer, http.StatusOK},
		{"x-api-key", map[string]string{"X-API-Key": "secret-key"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(newTestServer(&memoryStore{}), http.MethodGet, "/admin/credentials/status", "", tt.headers)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestAdminWithoutKeyConfigured(t *testing.T) {
	s := New(zerolog.Nop(), &memoryStore{}, "")
	rr := do(s, http.MethodGet, "/admin/credentials/status", "", bearer)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestStatusNotConfigured(t *testing.T) {
	rr := do(newTestServer(&memoryStore{}), http.MethodGet, "/admin/credentials/status", "", bearer)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "none", resp.State)
	assert.False(t, resp.HasCredentials)
	assert.NotEmpty(t, resp.Error)
}

func TestSeedThenStatus(t *testing.T) {
	store := &memoryStore{}
	s := newTestServer(store)

	body := `{"clientId":"id","clientSecret":"sec","accessToken":"tok","personId":"abc123","name":"Ada",
		"expiresIn":7200,"createdAt":"2026-10-18T08:30:00Z"}`
	rr := do(s, http.MethodPost, "/admin/credentials", body, bearer)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, store.rec)
	assert.Equal(t, "tok", store.rec.AccessToken)

	rr = do(s, http.MethodGet, "/admin/credentials/status", "", bearer)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "valid", resp.State)
	assert.True(t, resp.HasCredentials)
	assert.Equal(t, "Ada", resp.Name)
	assert.Equal(t, int64(90), resp.MinutesUntilExpiry)
	assert.False(t, resp.IsExpired)
	assert.Empty(t, resp.Error)
}

func TestStatusExpired(t *testing.T) {
	store := &memoryStore{rec: &credentials.Record{AccessToken: "t", PersonID: "p", ExpiresIn: 60, CreatedAt: now.Add(-time.Hour)}}

	rr := do(newTestServer(store), http.MethodGet, "/admin/credentials/status", "", bearer)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "expired", resp.State)
	assert.True(t, resp.IsExpired)
	assert.True(t, resp.HasCredentials)
}

func TestSeedRejectsIncompleteRecord(t *testing.T) {
	store := &memoryStore{}
	rr := do(newTestServer(store), http.MethodPost, "/admin/credentials", `{"accessToken":"tok"}`, bearer)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, store.rec)

	rr = do(newTestServer(store), http.MethodPost, "/admin/credentials", `not json`, bearer)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
