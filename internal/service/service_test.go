package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/model"
	"github.com/d60-Lab/pulse/internal/repository"
)

type testEnv struct {
	db        *gorm.DB
	content   ContentService
	relations RelationshipService
	follows   repository.FollowRepository
}

func setupEnv(t *testing.T) *testEnv {
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

	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	return &testEnv{
		db:        db,
		content:   NewContentService(posts, groups, comments, users, follows),
		relations: NewRelationshipService(follows, users),
		follows:   follows,
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func (e *testEnv) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: "Group " + slug, Slug: slug}
	if err := e.db.Create(g).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return g
}

// post seeds directly with an explicit timestamp so ordering assertions
// don't depend on clock resolution.
func (e *testEnv) post(t *testing.T, authorID, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        uuid.New().String(),
		Text:      text,
		AuthorID:  authorID,
		Rating:    1,
		CreatedAt: createdAt,
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func (e *testEnv) postCount(t *testing.T) int64 {
	t.Helper()
	var cnt int64
	if err := e.db.Model(&model.Post{}).Count(&cnt).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	return cnt
}
