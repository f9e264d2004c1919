package tag

import "time"

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	CreatedAt time.Time `json:"-"`
}

type CreateReq struct {
	Name string `json:"name" validate:"required,max=50"`
}
