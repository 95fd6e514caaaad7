package models

import (
	"time"

	"github.com/google/uuid"
)

// Client 代表委託拍賣或參與競標的客戶
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;<-:false" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     *string   `gorm:"type:text" json:"email"`
	Phone     *string   `gorm:"type:text" json:"phone"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone;not null;default:now();<-:false" json:"created_at"`
}
