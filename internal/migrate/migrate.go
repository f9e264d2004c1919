package migrate

import (
	"forum-service/internal/announcement"
	"forum-service/internal/comment"
	"forum-service/internal/membership"
	"forum-service/internal/payment"
	"forum-service/internal/post"
	"forum-service/internal/shared/db"
	"forum-service/internal/tag"
	"forum-service/internal/user"
	"forum-service/internal/vote"
)

func AutoMigrateAll(store *db.Store) error {
	return store.DB.AutoMigrate(
		&user.User{},
		&membership.Membership{},
		&post.Post{},
		&vote.PostVote{},
		&comment.Comment{},
		&tag.Tag{},
		&announcement.Announcement{},
		&payment.Payment{},
	)
}
