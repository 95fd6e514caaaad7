package api

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"

	"vlavem/adapters/database"
	"vlavem/adapters/postgres"
	"vlavem/adapters/supabase"
	"vlavem/diagnostics"
)

type ServerImpl struct {
	public      database.IClient
	admin       database.IClient
	diagnostics *diagnostics.Engine
	htmlChecker *bluemonday.Policy
	closers     []io.Closer
	logger      *slog.Logger

	config ServerConfig
}

// NewServer 依設定建立資料庫 client 與診斷引擎。
// 缺少必要設定時回傳錯誤，呼叫端應視為無法啟動。
func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"
	var public, admin database.IClient
	var closers []io.Closer

	switch lo.Ternary(config.Backend == "", BackendREST, config.Backend) {
	case BackendREST:
		// 初始化 Supabase 客戶端
		publicClient, adminClient, err := supabase.NewClients(
			config.Supabase.URL,
			config.Supabase.AnonKey,
			config.Supabase.ServiceRoleKey,
			supabase.WithSchema(lo.Ternary(config.Supabase.Schema == "", "public", config.Supabase.Schema)),
			supabase.WithLogger(slog.Default()),
		)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to create supabase clients, err=%w", op, err)
		}
		public, admin = publicClient, adminClient
	case BackendPostgres:
		// 初始化資料庫連線
		publicClient, adminClient, err := postgres.NewClients(config.DB)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
		}
		public, admin = publicClient, adminClient
		closers = append(closers, publicClient, adminClient)
	default:
		return nil, fmt.Errorf("[%s] Unsupported database backend: %s", op, config.Backend)
	}

	impl := NewServerWithClients(config, public, admin)
	impl.closers = closers
	return impl, nil
}

// NewServerWithClients 使用既有的 client 建立 ServerImpl
func NewServerWithClients(config ServerConfig, public, admin database.IClient) *ServerImpl {
	opts := []diagnostics.EngineOption{diagnostics.WithEngineLogger(slog.Default())}
	if config.Diagnostics.ProbeTable != "" {
		opts = append(opts, diagnostics.WithProbeTable(config.Diagnostics.ProbeTable))
	}
	if len(config.Diagnostics.ExpectedTables) > 0 {
		opts = append(opts, diagnostics.WithExpectedTables(config.Diagnostics.ExpectedTables))
	}
	env := diagnostics.Environment{
		URL:        config.Supabase.URL,
		AnonKey:    config.Supabase.AnonKey,
		ServiceKey: config.Supabase.ServiceRoleKey,
	}
	return &ServerImpl{
		public:      public,
		admin:       admin,
		diagnostics: diagnostics.NewEngine(env, public, admin, opts...),
		htmlChecker: bluemonday.UGCPolicy(),
		logger:      slog.Default().With(slog.String("caller", "Server")),
		config:      config,
	}
}

// RegisterRoutes 註冊所有路由
func (impl *ServerImpl) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))
	router.Use(impl.SessionMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// API
	router.GET("/api/auctions", impl.GetAuctions)
	router.POST("/api/auctions", impl.PostAuctions)
	router.GET("/api/test-supabase", impl.GetTestSupabase)

	// 頁面
	router.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/dashboard")
	})
	router.GET("/dashboard", impl.GetDashboard)
	router.GET("/test-connection", impl.GetTestConnection)
	router.GET("/test-connection/stream", impl.GetTestConnectionStream)
}

func (impl *ServerImpl) Close() {
	var errs []error
	for _, closer := range impl.closers {
		errs = append(errs, closer.Close())
	}
	if err := errors.Join(errs...); err != nil {
		impl.logger.Warn("Fail to close database connections", slog.Any("error", err))
	}
}
