package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}
