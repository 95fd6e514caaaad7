package supabase

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"vlavem/adapters/database"
)

var (
	ErrMissingURL = errors.New("supabase url is required")
	ErrMissingKey = errors.New("supabase key is required")
)

// Client 是外部資料庫服務的存取端，依照使用的 key 決定權限範圍
type Client struct {
	baseURL *url.URL
	key     string
	rest    *postgrest.Client
	http    *http.Client
	logger  *slog.Logger
	options ClientOptions
}

var _ database.IClient = (*Client)(nil)

// NewClient 使用服務網址與 key 建立 Client
func NewClient(rawURL, key string, opts ...ClientOption) (*Client, error) {
	const op = "NewClient"
	if rawURL == "" {
		return nil, fmt.Errorf("[%s] %w", op, ErrMissingURL)
	}
	if key == "" {
		return nil, fmt.Errorf("[%s] %w", op, ErrMissingKey)
	}
	baseURL, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to parse url, err=%w", op, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("[%s] Invalid url: %s", op, rawURL)
	}

	// 預設選項
	options := ClientOptions{
		schema:           "public",
		autoRefreshToken: true,
		persistSession:   true,
		httpClient:       http.DefaultClient,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	rest := postgrest.NewClient(baseURL.JoinPath("rest", "v1").String(), options.schema, map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("[%s] Fail to create rest client, err=%w", op, rest.ClientError)
	}

	return &Client{
		baseURL: baseURL,
		key:     key,
		rest:    rest,
		http:    options.httpClient,
		logger:  options.logger.With(slog.String("caller", "SupabaseClient"), slog.String("host", baseURL.Host)),
		options: options,
	}, nil
}

// NewClients 建立公開(anon key)與管理者(service role key)兩個 Client。
// 管理者 Client 只用於伺服器端的一次性呼叫，因此關閉 token 自動更新與 session。
func NewClients(rawURL, anonKey, serviceKey string, opts ...ClientOption) (public *Client, admin *Client, err error) {
	const op = "NewClients"
	public, err = NewClient(rawURL, anonKey, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to create public client, err=%w", op, err)
	}
	adminOpts := append(append([]ClientOption{}, opts...),
		WithAutoRefreshToken(false),
		WithPersistSession(false),
	)
	admin, err = NewClient(rawURL, serviceKey, adminOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to create admin client, err=%w", op, err)
	}
	return public, admin, nil
}

// AutoRefreshToken 回傳是否自動更新 session token
func (c *Client) AutoRefreshToken() bool {
	return c.options.autoRefreshToken
}

// PersistSession 回傳是否使用呼叫端帶入的 session
func (c *Client) PersistSession() bool {
	return c.options.persistSession
}

// URL 回傳服務網址
func (c *Client) URL() string {
	return c.baseURL.String()
}
