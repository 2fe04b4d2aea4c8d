package models

import "time"

type Post struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string    `json:"text" gorm:"not null;type:text"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	Image    string    `json:"image,omitempty"`
	AuthorID string    `json:"author_id" gorm:"type:uuid;not null;index"`
	GroupID  *int64    `json:"group_id,omitempty" gorm:"index"`

	// Associations
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Group  *Group `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL;"`
}

func (Post) TableName() string {
	return "posts"
}

// String mirrors the list display: the first 15 runes of the text.
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}
