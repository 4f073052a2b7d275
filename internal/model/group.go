package model

import "time"

// Group is a named topic bucket posts may optionally belong to.
// Slug is the URL key and never changes once posts reference it.
type Group struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Slug        string    `gorm:"type:varchar(50);uniqueIndex:ux_group_slug;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Group) TableName() string { return "groups" }
