package supabase_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func init() {
	// 將日誌輸出重定向到io.Discard
	log.SetOutput(io.Discard)
}

// fakeService 模擬外部資料庫服務的 REST 與 auth 端點
type fakeService struct {
	mu       sync.Mutex
	requests []*http.Request
	handlers map[string]http.HandlerFunc
}

func newFakeService(t *testing.T, handlers map[string]http.HandlerFunc) (*fakeService, *httptest.Server) {
	fs := &fakeService{handlers: handlers}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, r.Clone(r.Context()))
		fs.mu.Unlock()
		if h, ok := fs.handlers[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"code": "PGRST205", "message": "route not found: " + r.URL.Path})
	}))
	t.Cleanup(server.Close)
	return fs, server
}

func (fs *fakeService) last() *http.Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return nil
	}
	return fs.requests[len(fs.requests)-1]
}

func (fs *fakeService) count() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
