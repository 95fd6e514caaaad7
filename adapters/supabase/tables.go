package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"

	"vlavem/adapters/database"
	"vlavem/models"
)

const auctionColumns = "id,name,location,auction_date,status,description,created_at"

// ListAuctions 依建立時間由新到舊列出所有拍賣
func (c *Client) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	const op = "ListAuctions"
	var auctions []models.Auction
	_, err := c.rest.From(models.TableAuctions).
		Select(auctionColumns, "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&auctions)
	if err != nil {
		return nil, database.WrapError(op, err)
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}
	return auctions, nil
}

// CreateAuction 新增一筆拍賣並回傳寫入後的資料列
func (c *Client) CreateAuction(ctx context.Context, auction models.NewAuction) (*models.Auction, error) {
	const op = "CreateAuction"
	var created models.Auction
	_, err := c.rest.From(models.TableAuctions).
		Insert(auction, false, "", "representation", "").
		Single().
		ExecuteTo(&created)
	if err != nil {
		return nil, database.WrapError(op, err)
	}
	return &created, nil
}

// ListActiveCategories 依名稱排序列出啟用中的分類
func (c *Client) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	const op = "ListActiveCategories"
	var categories []models.Category
	_, err := c.rest.From(models.TableCategories).
		Select("*", "", false).
		Eq("active", "true").
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&categories)
	if err != nil {
		return nil, database.WrapError(op, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Probe 對指定資料表執行最多一筆的查詢
func (c *Client) Probe(ctx context.Context, table string) error {
	const op = "Probe"
	_, _, err := c.rest.From(table).
		Select("*", "", false).
		Limit(1, "").
		Execute()
	return database.WrapError(op, err)
}
