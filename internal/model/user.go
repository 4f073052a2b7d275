package model

import "time"

// User mirrors an account from the external identity provider. Rows are
// seeded out of band; this service only reads them.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex:ux_user_username;not null"`
	FullName  string    `gorm:"type:varchar(300)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
