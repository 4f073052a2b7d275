package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{
		ID:          uuid.New().String(),
		Title:       "Group " + slug,
		Description: "test group",
		Slug:        slug,
	}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return g
}

func seedPosts(t *testing.T, db *gorm.DB, authorID string, groupID *string, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			ID:       uuid.New().String(),
			Text:     fmt.Sprintf("post %d", i),
			AuthorID: authorID,
			GroupID:  groupID,
			Rating:   1,
		}
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed post %d: %v", i, err)
		}
		posts = append(posts, p)
	}
	return posts
}
