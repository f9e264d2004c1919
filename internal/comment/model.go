package comment

import "time"

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"index" json:"post_id"`
	AuthorEmail string    `gorm:"size:100;index" json:"author_email"`
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

type CreateReq struct {
	Content string `json:"content" validate:"required"`
}
