package models

import "time"

// Follow links a follower to a followed author. The (user, author) pair is
// unique at the storage layer, the repository's get-or-create only papers over
// concurrent submits.
type Follow struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_user_author"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_user_author"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Follow) TableName() string {
	return "follows"
}
