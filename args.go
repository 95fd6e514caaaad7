package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vlavem/adapters/postgres"
	"vlavem/api"
	"vlavem/diagnostics"
	"vlavem/models"
)

// 依序讀取的 .env 檔案，已存在的環境變數不會被覆蓋
var dotEnvFiles = []string{".env.local", ".env"}

func ParseArgs() Args {
	loadDotEnv()

	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")

	// supabase config
	pflag.String("supabase-url", "", "")
	pflag.String("supabase-anon-key", "", "")
	pflag.String("supabase-service-role-key", "", "")
	pflag.String("supabase-schema", "public", "")

	// db config
	pflag.String("db-backend", api.BackendREST, "rest or postgres")
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-database", "", "")
	pflag.String("db-schema", "", "")
	pflag.String("db-sslmode", "require", "")
	pflag.String("db-anon-user", "", "")
	pflag.String("db-anon-password", "", "")

	// diagnostics config
	pflag.String("probe-table", models.TableAuctions, "")
	pflag.StringSlice("expected-tables", models.BusinessTables, "")

	// dashboard config
	pflag.String("dashboard-url", "", "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("VLAVEM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// 前端沿用的環境變數名稱
	viper.BindEnv("supabase-url", "VLAVEM_SUPABASE_URL", diagnostics.EnvURL)
	viper.BindEnv("supabase-anon-key", "VLAVEM_SUPABASE_ANON_KEY", diagnostics.EnvAnonKey)
	viper.BindEnv("supabase-service-role-key", "VLAVEM_SUPABASE_SERVICE_ROLE_KEY", diagnostics.EnvServiceKey)

	// initial arguments
	return Args{
		ServerURL: viper.GetString("server-url"),
		ServerConfig: api.ServerConfig{
			Supabase: api.SupabaseConfig{
				URL:            viper.GetString("supabase-url"),
				AnonKey:        viper.GetString("supabase-anon-key"),
				ServiceRoleKey: viper.GetString("supabase-service-role-key"),
				Schema:         viper.GetString("supabase-schema"),
			},
			Backend: viper.GetString("db-backend"),
			DB: postgres.Config{
				User:         viper.GetString("db-user"),
				Password:     viper.GetString("db-password"),
				Host:         viper.GetString("db-host"),
				Port:         viper.GetInt("db-port"),
				Database:     viper.GetString("db-database"),
				Schema:       viper.GetString("db-schema"),
				SSLMode:      viper.GetString("db-sslmode"),
				AnonUser:     viper.GetString("db-anon-user"),
				AnonPassword: viper.GetString("db-anon-password"),
			},
			Diagnostics: api.DiagnosticsConfig{
				ProbeTable:     viper.GetString("probe-table"),
				ExpectedTables: viper.GetStringSlice("expected-tables"),
			},
			Dashboard: api.DashboardConfig{
				ProjectURL: viper.GetString("dashboard-url"),
			},
		},
	}
}

func loadDotEnv() {
	for _, file := range dotEnvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Fail to load env file", slog.String("file", file), slog.Any("error", err))
		}
	}
}

type Args struct {
	ServerURL    string
	ServerConfig api.ServerConfig
}

// Validate 檢查必要設定，外部資料庫服務的網址與兩把 key 不論使用哪個後端都必須設定
func (args Args) Validate() bool {
	if args.ServerURL == "" {
		return false
	}
	supabase := args.ServerConfig.Supabase
	if supabase.URL == "" || supabase.AnonKey == "" || supabase.ServiceRoleKey == "" {
		return false
	}
	switch args.ServerConfig.Backend {
	case api.BackendREST:
		return true
	case api.BackendPostgres:
		db := args.ServerConfig.DB
		return db.Host != "" && db.User != "" && db.Database != ""
	default:
		return false
	}
}
