package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/model"
)

// PostFilter narrows listings to one group and/or one author. Zero value
// means no filtering.
type PostFilter struct {
	GroupID  string
	AuthorID string
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	ListByFollower(ctx context.Context, followerID string, offset, limit int) ([]*model.Post, error)
	CountByFollower(ctx context.Context, followerID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update touches only the author-editable columns. AuthorID and CreatedAt
// stay whatever creation wrote.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("text", "group_id", "image", "rating").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
			"rating":   post.Rating,
		}).Error
}

// Delete removes the post and its comments in one transaction. The comment
// cascade lives here rather than in a driver FK pragma so it holds on both
// sqlite and postgres.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var cnt int64
	err := r.filtered(ctx, filter).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListByFollower(ctx context.Context, followerID string, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Joins("JOIN follows ON follows.followee_id = posts.author_id").
		Where("follows.follower_id = ?", followerID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByFollower(ctx context.Context, followerID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Joins("JOIN follows ON follows.followee_id = posts.author_id").
		Where("follows.follower_id = ?", followerID).
		Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if filter.GroupID != "" {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	return q
}
