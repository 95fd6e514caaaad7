package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vlavem/diagnostics"
)

// GetTestSupabase 執行 API 版的連線診斷。
// 檢查失敗時仍回傳 200 與報告，只有診斷本身無法完成時才回傳 500。
func (impl *ServerImpl) GetTestSupabase(c *gin.Context) {
	const op = "GetTestSupabase"
	status, body := Handle(op, func() (int, any, error) {
		logs := impl.diagnostics.NewLogCollector()
		defer logs.Close()
		report := impl.diagnostics.Run(c.Request.Context(), logs)
		return http.StatusOK, report, nil
	}, DiagnosticsErrorMapper(time.Now))
	c.JSON(status, body)
}

// DiagnosticsErrorMapper 將無法完成的診斷轉換成失敗回應
func DiagnosticsErrorMapper(now func() time.Time) ErrorMapper {
	return func(err error) (int, any) {
		return http.StatusInternalServerError, DiagnosticsFailureResponse{
			Success:   false,
			Message:   diagnostics.MessageRunFailed,
			Error:     err.Error(),
			Timestamp: now().UTC().Format(time.RFC3339Nano),
		}
	}
}
