package models

import "github.com/google/uuid"

// Category 代表拍品的分類，在本系統中只會被讀取
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;<-:false" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
}
