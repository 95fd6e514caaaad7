//go:generate mockgen -package=database -destination=mock.go -source=interfaces.go

package database

import (
	"context"

	"vlavem/models"
)

// User 是目前 session 所屬的使用者
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IClient 定義了對外部資料庫服務的操作介面，
// 所有方法回傳的錯誤皆為 *QueryError。
type IClient interface {
	// ListAuctions 依建立時間由新到舊列出所有拍賣
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	// CreateAuction 新增一筆拍賣並回傳寫入後的資料列
	CreateAuction(ctx context.Context, auction models.NewAuction) (*models.Auction, error)
	// ListActiveCategories 依名稱排序列出啟用中的分類
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	// Probe 對指定資料表執行最多一筆的查詢
	Probe(ctx context.Context, table string) error
	// CurrentUser 取得目前 session 的使用者，沒有 session 時回傳 nil
	CurrentUser(ctx context.Context) (*User, error)
	// ListTables 列出資料庫服務公開的資料表名稱
	ListTables(ctx context.Context) ([]string, error)
	// Version 取得資料庫版本
	Version(ctx context.Context) (string, error)
}
