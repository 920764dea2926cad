package models

import "time"

// User rows mirror the external auth provider: the primary key is the
// provider subject, inserted on first authenticated request.
type User struct {
	ID        string    `json:"id" gorm:"type:varchar(128);primaryKey"`
	Name      *string   `json:"name,omitempty" gorm:"type:varchar(255)"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
