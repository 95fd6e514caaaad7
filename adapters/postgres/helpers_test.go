package postgres_test

import (
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vlavem/adapters/postgres"
)

func init() {
	// 將日誌輸出重定向到io.Discard
	log.SetOutput(io.Discard)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// statement 是 dry run 模式下產生的 SQL 與參數
type statement struct {
	SQL  string
	Vars []any
}

// sqlRecorder 記錄每次操作產生的 SQL
type sqlRecorder struct {
	mu         sync.Mutex
	statements []statement
}

func (r *sqlRecorder) record(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, statement{
		SQL:  tx.Statement.SQL.String(),
		Vars: append([]any{}, tx.Statement.Vars...),
	})
}

func (r *sqlRecorder) last(t *testing.T) statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.statements, "no statement recorded")
	return r.statements[len(r.statements)-1]
}

// openDryRun 開啟不會連線的 gorm 連線，只產生 SQL
func openDryRun(t *testing.T) *gorm.DB {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN: "host=localhost user=postgres dbname=postgres sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newDryRunClient(t *testing.T) (*postgres.Client, *sqlRecorder) {
	db := openDryRun(t)
	recorder := &sqlRecorder{}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("vlavem:record", recorder.record))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("vlavem:record", recorder.record))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("vlavem:record", recorder.record))
	return postgres.NewClient(db), recorder
}
