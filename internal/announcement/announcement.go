package announcement

import "time"

type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorEmail string    `gorm:"size:100" json:"author_email"`
	Title       string    `gorm:"size:200" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpsertReq struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}
