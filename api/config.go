package api

import "vlavem/adapters/postgres"

// 支援的資料庫後端
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type ServerConfig struct {
	Supabase    SupabaseConfig
	Backend     string
	DB          postgres.Config
	Diagnostics DiagnosticsConfig
	Dashboard   DashboardConfig
}

type SupabaseConfig struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
	Schema         string
}

type DiagnosticsConfig struct {
	ProbeTable     string
	ExpectedTables []string
}

type DashboardConfig struct {
	// ProjectURL 是資料庫服務後台的網址，顯示在 dashboard 上
	ProjectURL string
}
