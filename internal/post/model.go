package post

import (
	"time"

	"gorm.io/gorm"
)

// Post carries its vote aggregate inline. The counters are mutated only
// inside the vote ledger transaction together with the post_votes rows,
// so readers never observe one without the other.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AuthorEmail string         `gorm:"size:100;index" json:"author_email"`
	Title       string         `gorm:"size:200" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	Tag         string         `gorm:"size:50;index" json:"tag,omitempty"`
	MediaKey    string         `gorm:"size:120" json:"media_key,omitempty"`
	UpCount     int            `json:"up_count"`
	DownCount   int            `json:"down_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
