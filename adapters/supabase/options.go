package supabase

import (
	"log/slog"
	"net/http"
)

// ClientOptions 包含建立 Client 時的設定選項
type ClientOptions struct {
	schema           string       // PostgREST 使用的 schema
	autoRefreshToken bool         // 是否自動更新 session token
	persistSession   bool         // 是否使用呼叫端帶入的 session
	httpClient       *http.Client // 呼叫 auth 與 metadata 端點使用的 HTTP 客戶端
	logger           *slog.Logger
}

// ClientOption 定義設定選項的函數類型
type ClientOption func(*ClientOptions)

// WithSchema 設定查詢使用的 schema
func WithSchema(schema string) ClientOption {
	return func(o *ClientOptions) {
		o.schema = schema
	}
}

// WithAutoRefreshToken 設定是否自動更新 session token
func WithAutoRefreshToken(enabled bool) ClientOption {
	return func(o *ClientOptions) {
		o.autoRefreshToken = enabled
	}
}

// WithPersistSession 設定是否使用呼叫端帶入的 session
func WithPersistSession(enabled bool) ClientOption {
	return func(o *ClientOptions) {
		o.persistSession = enabled
	}
}

// WithHTTPClient 設定呼叫 auth 與 metadata 端點(CurrentUser、ListTables、Version)的 HTTP 客戶端。
// 資料表查詢由 postgrest-go 發送，固定使用 http.DefaultTransport，
// 這裡設定的逾時與 proxy 不會套用到 ListAuctions、CreateAuction、ListActiveCategories 與 Probe。
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.httpClient = client
	}
}

// WithLogger 設定日誌記錄器
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *ClientOptions) {
		o.logger = logger
	}
}
