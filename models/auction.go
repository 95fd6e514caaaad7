package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus 代表拍賣的處理狀態
type AuctionStatus string

const (
	// AuctionStatusInProgress 代表拍賣仍在準備中(預設狀態)
	AuctionStatusInProgress AuctionStatus = "in_bewerking"
	AuctionStatusActive     AuctionStatus = "active"
	AuctionStatusCompleted  AuctionStatus = "completed"
)

// Auction 代表一場拍賣會
// 包含名稱、地點、日期與狀態，資料列由外部資料庫管理
type Auction struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey;<-:false" json:"id"`
	Name        string        `gorm:"type:text;not null" json:"name"`
	Location    string        `gorm:"type:text;not null" json:"location"`
	AuctionDate string        `gorm:"type:date;not null" json:"auction_date"`
	Status      AuctionStatus `gorm:"type:text;not null;default:'in_bewerking'" json:"status"`
	Description *string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time     `gorm:"type:timestamp with time zone;not null;default:now();<-:false" json:"created_at"`
}

// NewAuction 是建立拍賣時寫入資料庫的欄位
// 空字串的欄位不會送出，由資料庫的 not null 限制回報錯誤
type NewAuction struct {
	Name        string        `json:"name,omitempty"`
	Location    string        `json:"location,omitempty"`
	AuctionDate string        `json:"auction_date,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      AuctionStatus `json:"status"`
}

// IsCompleted 判斷拍賣是否已經結束
func (a Auction) IsCompleted() bool {
	return a.Status == AuctionStatusCompleted
}

// EmptyColumns 列出沒有填寫的必要欄位
func (a NewAuction) EmptyColumns() []string {
	var columns []string
	if a.Name == "" {
		columns = append(columns, "name")
	}
	if a.Location == "" {
		columns = append(columns, "location")
	}
	if a.AuctionDate == "" {
		columns = append(columns, "auction_date")
	}
	return columns
}
