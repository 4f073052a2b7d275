package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/pulse/internal/repository"
)

func TestCreateAndGetPost(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")

	before := time.Now().Add(-time.Second)
	post, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "hello world"})
	require.NoError(t, err)

	detail, err := env.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", detail.Post.Text)
	assert.Equal(t, author.ID, detail.Post.AuthorID)
	assert.False(t, detail.Post.CreatedAt.Before(before))
	assert.Equal(t, 1, detail.Post.Rating, "omitted rating defaults to 1")
}

func TestCreatePostEmptyBodyFails(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: text})
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Equal(t, int64(0), env.postCount(t), "nothing may be persisted")
}

func TestCreatePostRatingOutOfRange(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")

	for _, rating := range []int{-1, 11, 100} {
		_, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "ok", Rating: rating})
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Equal(t, int64(0), env.postCount(t))

	post, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "ok", Rating: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, post.Rating)
}

func TestCreatePostUnknownGroup(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")

	missing := "no-such-group"
	_, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "ok", GroupID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditPostByAuthor(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	g := env.group(t, "cats")

	post, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "before"})
	require.NoError(t, err)

	edited, err := env.content.EditPost(ctx, author.ID, post.ID, PostInput{
		Text:    "after",
		GroupID: &g.ID,
		Rating:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", edited.Text)
	assert.Equal(t, 5, edited.Rating)

	detail, err := env.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", detail.Post.Text)
	assert.Equal(t, author.ID, detail.Post.AuthorID)
	require.NotNil(t, detail.Post.GroupID)
	assert.Equal(t, g.ID, *detail.Post.GroupID)
}

func TestEditPostByNonAuthorLeavesPostUnchanged(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	intruder := env.user(t, "mallory")

	post, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "original"})
	require.NoError(t, err)

	_, err = env.content.EditPost(ctx, intruder.ID, post.ID, PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	detail, err := env.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", detail.Post.Text)
}

func TestEditPostNotFound(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	actor := env.user(t, "alice")

	_, err := env.content.EditPost(ctx, actor.ID, "missing", PostInput{Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsPagination(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		env.post(t, author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := env.content.ListPosts(ctx, repository.PostFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := env.content.ListPosts(ctx, repository.PostFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 3)
	assert.Equal(t, 2, page2.TotalPages)

	// out-of-range pages come back empty, not as an error
	page9, err := env.content.ListPosts(ctx, repository.PostFilter{}, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, page9.Items)
	assert.Equal(t, 2, page9.TotalPages)

	// newest post leads page one
	assert.Equal(t, "post 12", page1.Items[0].Text)
}

func TestGroupPosts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	g := env.group(t, "cats")

	base := time.Now().Add(-time.Hour)
	p := env.post(t, author.ID, "grouped", base)
	require.NoError(t, env.db.Model(p).Update("group_id", g.ID).Error)
	env.post(t, author.ID, "ungrouped", base.Add(time.Minute))

	group, listing, err := env.content.GroupPosts(ctx, "cats", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, g.ID, group.ID)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "grouped", listing.Items[0].Text)

	_, _, err = env.content.GroupPosts(ctx, "missing", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfile(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	viewer := env.user(t, "bob")

	base := time.Now().Add(-time.Hour)
	env.post(t, author.ID, "one", base)
	env.post(t, author.ID, "two", base.Add(time.Minute))

	profile, err := env.content.Profile(ctx, viewer.ID, "alice", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.PostCount)
	assert.False(t, profile.Following)

	require.NoError(t, env.relations.Follow(ctx, viewer.ID, author.ID))
	profile, err = env.content.Profile(ctx, viewer.ID, "alice", 1, 10)
	require.NoError(t, err)
	assert.True(t, profile.Following)

	_, err = env.content.Profile(ctx, viewer.ID, "nobody", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	commenter := env.user(t, "bob")

	post, err := env.content.CreatePost(ctx, author.ID, PostInput{Text: "commentable"})
	require.NoError(t, err)

	comment, err := env.content.AddComment(ctx, commenter.ID, post.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, comment.AuthorID)

	_, err = env.content.AddComment(ctx, commenter.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.content.AddComment(ctx, commenter.ID, "missing", "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	detail, err := env.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "nice one", detail.Comments[0].Text)
}

func TestFollowFeed(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")
	followed := env.user(t, "followed")
	stranger := env.user(t, "stranger")

	base := time.Now().Add(-time.Hour)
	env.post(t, followed.ID, "old", base)
	env.post(t, followed.ID, "new", base.Add(time.Minute))
	env.post(t, stranger.ID, "never seen", base.Add(2*time.Minute))

	require.NoError(t, env.relations.Follow(ctx, reader.ID, followed.ID))

	feed, err := env.content.FollowFeed(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "new", feed.Items[0].Text)
	assert.Equal(t, "old", feed.Items[1].Text)
	for _, p := range feed.Items {
		assert.Equal(t, followed.ID, p.AuthorID)
	}
}
