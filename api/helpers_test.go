package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vlavem/adapters/database"
	"vlavem/api"
)

func init() {
	// 將日誌輸出重定向到io.Discard
	log.SetOutput(io.Discard)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	gin.SetMode(gin.TestMode)
}

var testConfig = api.ServerConfig{
	Supabase: api.SupabaseConfig{
		URL:            "https://vlavem.supabase.co",
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
	},
	Backend: api.BackendREST,
}

type testServer struct {
	router *gin.Engine
	public *database.MockIClient
	admin  *database.MockIClient
}

func newTestServer(t *testing.T, config api.ServerConfig) *testServer {
	ctrl := gomock.NewController(t)
	public := database.NewMockIClient(ctrl)
	admin := database.NewMockIClient(ctrl)
	impl := api.NewServerWithClients(config, public, admin)
	router := gin.New()
	impl.RegisterRoutes(router)
	return &testServer{router: router, public: public, admin: admin}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

