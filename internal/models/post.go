package models

import "time"

// Post is a top-level post when ParentID is nil, or a comment on its
// parent when ParentID is set. Comments do not nest further.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"` // nil once the author account is deleted
	User      *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Body      string    `json:"body"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Comments  []Post    `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a post or a comment
type CreatePostRequest struct {
	Body   string `json:"body"`
	Parent *uint  `json:"parent"`
}

// UpdatePostRequest defines the request body for PUT /posts/:id. The two
// update intents are mutually exclusive: Action selects the like toggle,
// Body selects an owner-only body edit. Unknown keys are rejected when
// decoding.
type UpdatePostRequest struct {
	Action *string `json:"action"`
	Body   *string `json:"body"`
}

// ActionToggleLike is the Action marker selecting the like toggle
const ActionToggleLike = "toggle_like"
