package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

// QueryError 代表資料庫服務明確回傳的查詢錯誤
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Op, e.Message())
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Message 回傳底層資料庫的錯誤訊息(不含操作名稱)
func (e *QueryError) Message() string {
	if e.Err == nil {
		return "unknown query error"
	}
	return e.Err.Error()
}

// NewQueryError 將 err 包裝成 *QueryError，err 為 nil 時回傳 nil
func NewQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, Err: err}
}

// AsQueryError 判斷 err 是否為查詢錯誤
func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}

// WrapError 將資料庫服務回傳的錯誤包裝成 *QueryError。
// 連線層級的錯誤(無法連到服務)不是查詢錯誤，只加上操作名稱後回傳。
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsNetworkError(err) {
		return fmt.Errorf("[%s] Fail to reach database, err=%w", op, err)
	}
	return NewQueryError(op, err)
}

// IsNetworkError 判斷 err 是否來自網路或連線層
func IsNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn)
}
