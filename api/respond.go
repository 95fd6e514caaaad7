package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"vlavem/adapters/database"
)

const MessageInternalServerError = "Internal server error"

// ErrorMapper 將錯誤轉換成 HTTP 狀態碼與回應內容
type ErrorMapper func(err error) (int, any)

// QueryErrorMapper 是兩層式的錯誤轉換：
// 資料庫回傳的查詢錯誤會帶上 details，其他錯誤只回傳通用訊息。
func QueryErrorMapper(message string) ErrorMapper {
	return func(err error) (int, any) {
		if qe, ok := database.AsQueryError(err); ok {
			return http.StatusInternalServerError, ErrorResponse{Error: message, Details: qe.Message()}
		}
		return http.StatusInternalServerError, ErrorResponse{Error: MessageInternalServerError}
	}
}

// Handle 執行 fn 並把結果轉換成回應，fn 回傳的錯誤與 panic 都交由 mapErr 處理
func Handle(op string, fn func() (int, any, error), mapErr ErrorMapper) (status int, body any) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("[%s] panic: %v", op, r)
			slog.Error("Unexpected error", slog.String("op", op), slog.Any("error", err))
			status, body = mapErr(err)
		}
	}()
	status, body, err := fn()
	if err != nil {
		if _, ok := database.AsQueryError(err); ok {
			slog.Error("Query failed", slog.String("op", op), slog.Any("error", err))
		} else {
			slog.Error("Unexpected error", slog.String("op", op), slog.Any("error", err))
		}
		return mapErr(err)
	}
	return status, body
}
