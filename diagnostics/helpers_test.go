package diagnostics_test

import (
	"io"
	"log"
	"log/slog"
	"time"

	"vlavem/diagnostics"
)

func init() {
	// 將日誌輸出重定向到io.Discard
	log.SetOutput(io.Discard)
}

var (
	fixedTime     = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	validEnv      = diagnostics.Environment{
		URL:        "https://vlavem.supabase.co",
		AnonKey:    "anon-key",
		ServiceKey: "service-key",
	}
)

func engineOptions() []diagnostics.EngineOption {
	return []diagnostics.EngineOption{
		diagnostics.WithClock(func() time.Time { return fixedTime }),
		diagnostics.WithEngineLogger(discardLogger),
	}
}
