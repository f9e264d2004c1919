package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;size:100" json:"email"`
	Password  string `gorm:"size:255" json:"-"`
	Name      string `gorm:"size:100" json:"name"`
	Role      string `gorm:"size:16;default:user" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
