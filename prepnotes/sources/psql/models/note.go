// prepnotes/sources/psql/models/note.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// URLList stores a note's reference links as a JSON-encoded text column,
// preserving order.
type URLList []string

func (u URLList) Value() (driver.Value, error) {
	if len(u) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (u *URLList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*u = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*u = nil
			return nil
		}
		return json.Unmarshal(v, u)
	case string:
		if v == "" {
			*u = nil
			return nil
		}
		return json.Unmarshal([]byte(v), u)
	default:
		return fmt.Errorf("cannot scan %T into URLList", src)
	}
}

type Note struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"type:varchar(128);not null;index"`
	User       User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title      string    `json:"title" gorm:"type:varchar(255);not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CategoryID int       `json:"category_id" gorm:"not null"`
	Category   Category  `json:"category" gorm:"foreignKey:CategoryID;references:ID"`
	URLs       URLList   `json:"urls,omitempty" gorm:"type:text"`
	IsPinned   bool      `json:"is_pinned" gorm:"not null;default:false"`
	SortOrder  int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
