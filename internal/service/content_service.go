package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/model"
	"github.com/d60-Lab/pulse/internal/repository"
	"github.com/d60-Lab/pulse/internal/validation"
	"github.com/d60-Lab/pulse/pkg/paginator"
)

// PostInput carries the author-editable fields of a post. Rating 0 means
// "not supplied" and defaults to validation.RatingDefault.
type PostInput struct {
	Text    string
	GroupID *string
	Image   string
	Rating  int
}

// PostPage is one page of a newest-first listing plus the page count of the
// whole result set.
type PostPage struct {
	Items      []*model.Post
	Page       int
	TotalPages int
}

// PostDetail is the post view: the post, its comments newest-first, and how
// many posts its author has in total.
type PostDetail struct {
	Post            *model.Post
	Comments        []*model.Comment
	AuthorPostCount int64
}

// Profile is an author page: the author, their posts, and whether the
// viewer follows them.
type Profile struct {
	Author    *model.User
	Posts     PostPage
	PostCount int64
	Following bool
}

// ContentService implements the post/comment use cases. Identity is
// external: every mutating call takes the acting user ID explicitly.
type ContentService interface {
	ListPosts(ctx context.Context, filter repository.PostFilter, page, pageSize int) (PostPage, error)
	GroupPosts(ctx context.Context, slug string, page, pageSize int) (*model.Group, PostPage, error)
	Profile(ctx context.Context, viewerID, username string, page, pageSize int) (*Profile, error)
	GetPost(ctx context.Context, id string) (*PostDetail, error)
	CreatePost(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	EditPost(ctx context.Context, actorID, postID string, in PostInput) (*model.Post, error)
	AddComment(ctx context.Context, actorID, postID, text string) (*model.Comment, error)
	FollowFeed(ctx context.Context, actorID string, page, pageSize int) (PostPage, error)
	Groups(ctx context.Context) ([]*model.Group, error)
}

type contentService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
}

func NewContentService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
) ContentService {
	return &contentService{posts: posts, groups: groups, comments: comments, users: users, follows: follows}
}

func (s *contentService) ListPosts(ctx context.Context, filter repository.PostFilter, page, pageSize int) (PostPage, error) {
	p := paginator.Normalize(page, pageSize)
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return PostPage{}, err
	}
	items, err := s.posts.List(ctx, filter, p.Offset(), p.PageSize)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{Items: items, Page: p.Page, TotalPages: p.TotalPages(total)}, nil
}

func (s *contentService) GroupPosts(ctx context.Context, slug string, page, pageSize int) (*model.Group, PostPage, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, PostPage{}, asNotFound(err)
	}
	posts, err := s.ListPosts(ctx, repository.PostFilter{GroupID: group.ID}, page, pageSize)
	if err != nil {
		return nil, PostPage{}, err
	}
	return group, posts, nil
}

func (s *contentService) Profile(ctx context.Context, viewerID, username string, page, pageSize int) (*Profile, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	filter := repository.PostFilter{AuthorID: author.ID}
	posts, err := s.ListPosts(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != "" {
		following, err = s.follows.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &Profile{Author: author, Posts: posts, PostCount: count, Following: following}, nil
}

func (s *contentService) GetPost(ctx context.Context, id string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

func (s *contentService) CreatePost(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	if err := s.checkPostInput(ctx, &in); err != nil {
		return nil, err
	}
	post := &model.Post{
		ID:       uuid.New().String(),
		Text:     in.Text,
		AuthorID: authorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
		Rating:   in.Rating,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *contentService) EditPost(ctx context.Context, actorID, postID string, in PostInput) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}
	if err := s.checkPostInput(ctx, &in); err != nil {
		return nil, err
	}
	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Image = in.Image
	post.Rating = in.Rating
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *contentService) AddComment(ctx context.Context, actorID, postID, text string) (*model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, asNotFound(err)
	}
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	comment := &model.Comment{
		ID:       uuid.New().String(),
		Text:     text,
		PostID:   postID,
		AuthorID: actorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// FollowFeed reads live over the follow edges (fan-out on read); no inbox
// materialization.
func (s *contentService) FollowFeed(ctx context.Context, actorID string, page, pageSize int) (PostPage, error) {
	p := paginator.Normalize(page, pageSize)
	total, err := s.posts.CountByFollower(ctx, actorID)
	if err != nil {
		return PostPage{}, err
	}
	items, err := s.posts.ListByFollower(ctx, actorID, p.Offset(), p.PageSize)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{Items: items, Page: p.Page, TotalPages: p.TotalPages(total)}, nil
}

func (s *contentService) Groups(ctx context.Context) ([]*model.Group, error) {
	return s.groups.List(ctx)
}

func (s *contentService) checkPostInput(ctx context.Context, in *PostInput) error {
	if err := validation.ValidatePostText(in.Text); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if in.Rating == 0 {
		in.Rating = validation.RatingDefault
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			return asNotFound(err)
		}
	}
	return nil
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
