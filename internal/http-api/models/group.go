package models

type Group struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}
