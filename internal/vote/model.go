package vote

import "time"

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	// None is the absence of a vote, reported after a toggle-off.
	None Direction = ""
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	}
	return None, false
}

// PostVote is the vote map: one row per (post, voter), unique by the
// composite key. Aggregate counters live on the post row and are only
// touched in the same transaction as these rows.
type PostVote struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserEmail string    `gorm:"primaryKey;size:100" json:"user_email"`
	Direction Direction `gorm:"size:8" json:"direction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
