package models

import (
	"time"

	"github.com/google/uuid"
)

// Lot 代表拍賣會中的一個拍品
// 屬於某場拍賣，並可關聯到分類與委託客戶
type Lot struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;<-:false" json:"id"`
	AuctionID   uuid.UUID  `gorm:"type:uuid;not null" json:"auction_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid" json:"category_id"`
	ClientID    *uuid.UUID `gorm:"type:uuid" json:"client_id"`
	LotNumber   int        `gorm:"not null" json:"lot_number"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `gorm:"type:timestamp with time zone;not null;default:now();<-:false" json:"created_at"`

	// 外鍵關聯
	Auction  *Auction  `gorm:"foreignKey:AuctionID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"-"`
}
