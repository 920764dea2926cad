package models

import "time"

// Category is seeded reference data, not user-editable.
type Category struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(50);not null;uniqueIndex"`
	Icon      string    `json:"icon" gorm:"type:varchar(50);not null"`
	Color     string    `json:"color" gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}
