package model

import "time"

// Post is a unit of authored content. AuthorID and CreatedAt are set once
// at creation and never change; everything else is editable by the author.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string    `gorm:"type:varchar(255)"`
	Rating    int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
