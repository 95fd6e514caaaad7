package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"vlavem/adapters/database"
	"vlavem/models"
)

// 外部資料庫服務需要的環境變數
const (
	EnvURL        = "NEXT_PUBLIC_SUPABASE_URL"
	EnvAnonKey    = "NEXT_PUBLIC_SUPABASE_ANON_KEY"
	EnvServiceKey = "SUPABASE_SERVICE_ROLE_KEY"
)

// Environment 是診斷時檢查的設定值
type Environment struct {
	URL        string
	AnonKey    string
	ServiceKey string
}

type engineOptions struct {
	probeTable     string
	expectedTables []string
	logger         *slog.Logger
	now            func() time.Time
}

// EngineOption 定義 Engine 設定選項的函數類型
type EngineOption func(*engineOptions)

// WithProbeTable 設定連線檢查時查詢的資料表
func WithProbeTable(table string) EngineOption {
	return func(o *engineOptions) {
		o.probeTable = table
	}
}

// WithExpectedTables 設定頁面版診斷預期存在的資料表
func WithExpectedTables(tables []string) EngineOption {
	return func(o *engineOptions) {
		o.expectedTables = tables
	}
}

// WithEngineLogger 設置日誌記錄器
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithClock 設定取得目前時間的函數
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) {
		o.now = now
	}
}

// Engine 依序執行一組互相獨立的唯讀檢查並彙整成 Report。
// 單一檢查失敗只會被記錄，不會中斷其他檢查。
type Engine struct {
	env     Environment
	public  database.IClient
	admin   database.IClient
	options engineOptions
}

// NewEngine 建立診斷引擎，public 或 admin 可以是 nil(代表初始化失敗)
func NewEngine(env Environment, public, admin database.IClient, opts ...EngineOption) *Engine {
	options := engineOptions{
		probeTable:     models.TableAuctions,
		expectedTables: models.BusinessTables,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Engine{env: env, public: public, admin: admin, options: options}
}

// NewLogCollector 建立使用 Engine 日誌記錄器的 LogCollector
func (e *Engine) NewLogCollector() *LogCollector {
	return NewLogCollector(e.options.logger)
}

// Run 執行 API 版診斷：不論環境檢查結果，所有檢查都會執行
func (e *Engine) Run(ctx context.Context, logs *LogCollector) Report {
	report := e.newReport()
	logs.Info("🔍 Testing Supabase connection...")
	e.checkEnvironment(&report, logs)
	e.runConnectionChecks(ctx, &report, logs)
	return e.finish(&report, logs)
}

// RunExtended 執行頁面版診斷：環境檢查失敗時直接結束，
// 否則在連線檢查之外再檢查業務資料表、資料表清單與資料庫版本。
func (e *Engine) RunExtended(ctx context.Context, logs *LogCollector) Report {
	report := e.newReport()
	report.Extended = &ExtendedChecks{
		Tables:        make(map[string]bool, len(e.options.expectedTables)),
		MissingTables: []string{},
	}
	if !e.checkEnvironment(&report, logs) {
		logs.Error("Skipping connection tests, environment is incomplete")
		return e.finish(&report, logs)
	}
	if !strings.Contains(e.env.URL, "supabase.co") {
		logs.Warn("Supabase URL format might be incorrect: %s", e.env.URL)
	}
	logs.Info("🔍 Testing Supabase connection...")
	e.runConnectionChecks(ctx, &report, logs)
	e.runTableChecks(ctx, &report, logs)
	return e.finish(&report, logs)
}

func (e *Engine) newReport() Report {
	return Report{
		Timestamp: e.options.now().UTC(),
		Errors:    []string{},
	}
}

func (e *Engine) finish(report *Report, logs *LogCollector) Report {
	report.finalize()
	if report.Success {
		logs.Info(MessageAllPassed)
	} else {
		logs.Warn("Some Supabase tests failed (%d errors)", len(report.Errors))
	}
	report.Logs = logs.Lines()
	return *report
}

func (e *Engine) checkEnvironment(report *Report, logs *LogCollector) bool {
	logs.Info("🔍 Checking environment variables...")
	report.Environment = EnvironmentStatus{
		URL:        e.env.URL != "",
		AnonKey:    e.env.AnonKey != "",
		ServiceKey: e.env.ServiceKey != "",
	}
	if missing := report.Environment.Missing(); len(missing) > 0 {
		// 只記錄在日誌，errors 只列出檢查失敗的項目
		logs.Error("Missing environment variables: %s", strings.Join(missing, ", "))
		return false
	}
	logs.Info("✅ All required environment variables are set")
	return true
}

func (e *Engine) runConnectionChecks(ctx context.Context, report *Report, logs *LogCollector) {
	// 1. client 初始化
	report.Tests.ClientInitialization = e.check(report, logs, "Client initialization", func() error {
		if e.public == nil || e.admin == nil {
			return fmt.Errorf("supabase client not initialized")
		}
		logs.Info("✅ Supabase client initialized")
		return nil
	})

	// 2. 公開 client 查詢
	report.Tests.DatabaseConnection = e.check(report, logs, "Database connection", func() error {
		if err := e.probe(ctx, e.public, e.options.probeTable); err != nil {
			return err
		}
		logs.Info("✅ Database connection successful")
		return nil
	})

	// 3. 管理者 client 查詢
	report.Tests.AdminConnection = e.check(report, logs, "Admin connection", func() error {
		if err := e.probe(ctx, e.admin, e.options.probeTable); err != nil {
			return err
		}
		logs.Info("✅ Admin connection successful")
		return nil
	})

	// 4. session 狀態(沒有 session 是正常的)
	report.Tests.Authentication = e.check(report, logs, "Authentication", func() error {
		if e.public == nil {
			return fmt.Errorf("supabase client not initialized")
		}
		user, err := e.public.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			logs.Info("ℹ️ No user session (this is normal for initial setup)")
			return nil
		}
		logs.Info("✅ User authenticated: %s", user.Email)
		return nil
	})
}

func (e *Engine) runTableChecks(ctx context.Context, report *Report, logs *LogCollector) {
	// 業務資料表
	for _, table := range e.options.expectedTables {
		report.Extended.Tables[table] = e.check(report, logs, "Table "+table, func() error {
			if err := e.probe(ctx, e.admin, table); err != nil {
				return err
			}
			logs.Info("✅ Table %s is reachable", table)
			return nil
		})
	}

	// 資料表清單
	report.Extended.Introspection = e.check(report, logs, "Schema introspection", func() error {
		if e.admin == nil {
			return fmt.Errorf("supabase client not initialized")
		}
		tables, err := e.admin.ListTables(ctx)
		if err != nil {
			return err
		}
		_, missing := lo.Difference(tables, e.options.expectedTables)
		report.Extended.MissingTables = missing
		if len(missing) > 0 {
			logs.Warn("Expected tables not found: %s", strings.Join(missing, ", "))
		} else {
			logs.Info("✅ All expected tables exist (%d tables found)", len(tables))
		}
		return nil
	})

	// 資料庫版本(僅供參考，不影響結果)
	if e.admin != nil {
		version, err := safeCall(func() (string, error) { return e.admin.Version(ctx) })
		if err == nil && version != "" {
			report.Extended.Version = version
			logs.Info("✅ Database version: %s", version)
		}
	}
}

// check 執行單一檢查，失敗時記錄錯誤並回傳 false，不會把錯誤或 panic 往外拋
func (e *Engine) check(report *Report, logs *LogCollector, name string, fn func() error) bool {
	_, err := safeCall(func() (struct{}, error) { return struct{}{}, fn() })
	if err != nil {
		message := errorMessage(err)
		logs.Error("%s failed: %s", name, message)
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", name, message))
		return false
	}
	return true
}

func (e *Engine) probe(ctx context.Context, client database.IClient, table string) error {
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}
	return client.Probe(ctx, table)
}

func safeCall[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func errorMessage(err error) string {
	if qe, ok := database.AsQueryError(err); ok {
		return qe.Message()
	}
	return err.Error()
}
