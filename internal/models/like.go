package models

import "time"

// Like pairs a user with a post. At most one row may exist per
// (user, post) pair; row existence is the liked state.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post"`
	CreatedAt time.Time `json:"created_at"`
}
