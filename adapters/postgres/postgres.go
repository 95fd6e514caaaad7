package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"vlavem/adapters/database"
	"vlavem/models"
)

// Config 是直接連線資料庫時使用的設定
type Config struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
	Schema   string
	SSLMode  string

	// 公開存取使用的帳號，未設定時沿用 User/Password
	AnonUser     string
	AnonPassword string
}

// DSN 組合連線字串，anon 為 true 時使用公開存取的帳號
func (c Config) DSN(anon bool) string {
	user, password := c.User, c.Password
	if anon && c.AnonUser != "" {
		user, password = c.AnonUser, c.AnonPassword
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	schema := c.Schema
	if schema == "" {
		schema = "public"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s", user, password, c.Host, c.Port, c.Database, sslMode, schema)
}

// Client 透過 gorm 直接存取資料庫
type Client struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ database.IClient = (*Client)(nil)

// NewClient 使用既有的 gorm 連線建立 Client
func NewClient(db *gorm.DB) *Client {
	return &Client{
		db:     db,
		logger: slog.Default().With(slog.String("caller", "PostgresClient")),
	}
}

// Open 開啟 gorm 連線
func Open(dsn string) (*gorm.DB, error) {
	const op = "Open"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
	}
	return db, nil
}

// NewClients 建立公開與管理者兩個 Client，
// 沒有設定公開帳號時兩者共用同一個連線池。
func NewClients(config Config) (public *Client, admin *Client, err error) {
	return newClients(config, Open)
}

func newClients(config Config, open func(dsn string) (*gorm.DB, error)) (public *Client, admin *Client, err error) {
	const op = "NewClients"
	if config.Host == "" || config.User == "" || config.Database == "" {
		return nil, nil, fmt.Errorf("[%s] Missing database host, user or name", op)
	}
	adminDB, err := open(config.DSN(false))
	if err != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to open admin connection, err=%w", op, err)
	}
	publicDB := adminDB
	if config.AnonUser != "" {
		publicDB, err = open(config.DSN(true))
		if err != nil {
			// 公開連線失敗時釋放已開啟的管理者連線
			if closeErr := NewClient(adminDB).Close(); closeErr != nil {
				slog.Warn("Fail to close admin connection", slog.Any("error", closeErr))
			}
			return nil, nil, fmt.Errorf("[%s] Fail to open public connection, err=%w", op, err)
		}
	} else {
		slog.Warn("No anon database user configured, public client shares the admin connection")
	}
	return NewClient(publicDB), NewClient(adminDB), nil
}

// ListAuctions 依建立時間由新到舊列出所有拍賣
func (c *Client) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	const op = "ListAuctions"
	auctions := []models.Auction{}
	result := c.db.WithContext(ctx).
		Select("id", "name", "location", "to_char(auction_date, 'YYYY-MM-DD') AS auction_date", "status", "description", "created_at").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Find(&auctions)
	if result.Error != nil {
		return nil, database.WrapError(op, result.Error)
	}
	return auctions, nil
}

// CreateAuction 新增一筆拍賣並回傳寫入後的資料列
func (c *Client) CreateAuction(ctx context.Context, auction models.NewAuction) (*models.Auction, error) {
	const op = "CreateAuction"
	record := models.Auction{
		Name:        auction.Name,
		Location:    auction.Location,
		AuctionDate: auction.AuctionDate,
		Status:      auction.Status,
		Description: auction.Description,
	}
	tx := c.db.WithContext(ctx)
	if empty := auction.EmptyColumns(); len(empty) > 0 {
		tx = tx.Omit(empty...)
	}
	if result := tx.Create(&record); result.Error != nil {
		return nil, database.WrapError(op, result.Error)
	}
	c.logger.Debug("Auction created", slog.String("id", record.ID.String()))
	return &record, nil
}

// ListActiveCategories 依名稱排序列出啟用中的分類
func (c *Client) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	const op = "ListActiveCategories"
	categories := []models.Category{}
	result := c.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&categories)
	if result.Error != nil {
		return nil, database.WrapError(op, result.Error)
	}
	return categories, nil
}

// Probe 對指定資料表執行最多一筆的查詢
func (c *Client) Probe(ctx context.Context, table string) error {
	const op = "Probe"
	var rows []map[string]any
	result := c.db.WithContext(ctx).Table(table).Limit(1).Find(&rows)
	return database.WrapError(op, result.Error)
}

// CurrentUser 直接連線沒有 session 的概念，一律回傳 nil
func (c *Client) CurrentUser(ctx context.Context) (*database.User, error) {
	return nil, nil
}

// ListTables 從 information_schema 列出目前 schema 的資料表
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	const op = "ListTables"
	var tables []string
	result := c.db.WithContext(ctx).
		Table("information_schema.tables").
		Where("table_schema = current_schema()").
		Order("table_name").
		Pluck("table_name", &tables)
	if result.Error != nil {
		return nil, database.WrapError(op, result.Error)
	}
	return tables, nil
}

// Version 取得資料庫版本
func (c *Client) Version(ctx context.Context) (string, error) {
	const op = "Version"
	var version string
	if result := c.db.WithContext(ctx).Raw("SELECT version()").Scan(&version); result.Error != nil {
		return "", database.WrapError(op, result.Error)
	}
	return version, nil
}

// Close 關閉底層連線池
func (c *Client) Close() error {
	const op = "Close"
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("[%s] Fail to get sql.DB, err=%w", op, err)
	}
	return sqlDB.Close()
}
