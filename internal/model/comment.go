package model

import "time"

// Comment is a reply to a post. Create-only: no edit or delete operation
// exists, rows disappear only when the parent post is deleted.
type Comment struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Text      string `gorm:"type:text;not null"`
	PostID    string `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	Post      *Post  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  string `gorm:"type:varchar(36);index:idx_comment_author;not null"`
	Author    *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Comment) TableName() string { return "comments" }
