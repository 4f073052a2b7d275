package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/pulse/internal/cache"
	"github.com/d60-Lab/pulse/internal/repository"
	"github.com/d60-Lab/pulse/internal/service"
	"github.com/d60-Lab/pulse/pkg/logger"
	"github.com/d60-Lab/pulse/pkg/paginator"
	"github.com/d60-Lab/pulse/pkg/response"
)

type postRequest struct {
	Text   string  `json:"text" binding:"required"`
	Group  *string `json:"group"`
	Image  string  `json:"image"`
	Rating int     `json:"rating" binding:"omitempty,min=1,max=10"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{Text: r.Text, GroupID: r.Group, Image: r.Image, Rating: r.Rating}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

const contentTypeJSON = "application/json; charset=utf-8"

// Home renders the front page listing through the feed cache. Entries live
// until the TTL runs out or an operator clears the cache; new posts do not
// invalidate.
// @Summary Home listing
// @Tags posts
// @Produce json
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response{data=listingView}
// @Router / [get]
func (h *Handler) Home(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	ctx := c.Request.Context()
	key := cache.HomeKey(page)

	if data, ok, err := h.feedCache.Get(ctx, key); err == nil && ok {
		c.Data(http.StatusOK, contentTypeJSON, data)
		return
	} else if err != nil {
		logger.Warn("feed cache read failed", zap.Error(err))
	}

	listing, err := h.content.ListPosts(ctx, repository.PostFilter{}, page, paginator.DefaultPageSize)
	if err != nil {
		renderError(c, err)
		return
	}
	payload, err := json.Marshal(response.Response{
		Code:    http.StatusOK,
		Message: "ok",
		Data:    toListingView(listing),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.feedCache.Put(ctx, key, payload); err != nil {
		logger.Warn("feed cache write failed", zap.Error(err))
	}
	c.Data(http.StatusOK, contentTypeJSON, payload)
}

// GroupPosts lists a group's posts by slug.
// @Summary Group listing
// @Tags posts
// @Produce json
// @Param slug path string true "group slug"
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug}/ [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	group, listing, err := h.content.GroupPosts(c.Request.Context(), c.Param("slug"), page, paginator.DefaultPageSize)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"group": gin.H{
			"title":       group.Title,
			"slug":        group.Slug,
			"description": group.Description,
		},
		"listing": toListingView(listing),
	})
}

// Profile lists an author's posts plus the viewer's follow status.
// @Summary Author profile
// @Tags posts
// @Produce json
// @Param username path string true "author username"
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	viewer := identity(c)
	profile, err := h.content.Profile(c.Request.Context(), viewer.UserID, c.Param("username"), page, paginator.DefaultPageSize)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"author": gin.H{
			"username":  profile.Author.Username,
			"full_name": profile.Author.FullName,
		},
		"post_count": profile.PostCount,
		"following":  profile.Following,
		"listing":    toListingView(profile.Posts),
	})
}

// PostDetail shows one post with its comments.
// @Summary Post detail
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/ [get]
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	comments := make([]commentView, 0, len(detail.Comments))
	for _, cm := range detail.Comments {
		comments = append(comments, toCommentView(cm))
	}
	response.Success(c, gin.H{
		"post":              toPostView(detail.Post),
		"comments":          comments,
		"author_post_count": detail.AuthorPostCount,
	})
}

// CreateForm returns the post form schema, the JSON analogue of the
// server-rendered form GET.
// @Summary Post form
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response
// @Router /create/ [get]
func (h *Handler) CreateForm(c *gin.Context) {
	groups, err := h.content.Groups(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	options := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		options = append(options, gin.H{"id": g.ID, "title": g.Title, "slug": g.Slug})
	}
	response.Success(c, gin.H{
		"fields": []string{"text", "group", "image", "rating"},
		"groups": options,
	})
}

// CreatePost persists a new post for the authenticated author.
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body postRequest true "post fields"
// @Success 200 {object} response.Response{data=postView}
// @Failure 400 {object} response.Response
// @Router /create/ [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	actor := identity(c)
	post, err := h.content.CreatePost(c.Request.Context(), actor.UserID, req.toInput())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, toPostView(post))
}

// EditForm returns the current post as form data; only the author gets it.
// @Summary Edit form
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [get]
func (h *Handler) EditForm(c *gin.Context) {
	detail, err := h.content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	actor := identity(c)
	if detail.Post.AuthorID != actor.UserID {
		c.Redirect(http.StatusFound, "/posts/"+detail.Post.ID+"/")
		return
	}
	response.Success(c, toPostView(detail.Post))
}

// EditPost updates an existing post. A non-author is sent back to the read
// view instead of getting an error, matching the frontend's behavior.
// @Summary Edit post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param request body postRequest true "post fields"
// @Success 200 {object} response.Response{data=postView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [post]
func (h *Handler) EditPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	actor := identity(c)
	postID := c.Param("id")
	post, err := h.content.EditPost(c.Request.Context(), actor.UserID, postID, req.toInput())
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, "/posts/"+postID+"/")
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, toPostView(post))
}

// AddComment attaches a comment to a post.
// @Summary Comment on post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param request body commentRequest true "comment text"
// @Success 200 {object} response.Response{data=commentView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	actor := identity(c)
	comment, err := h.content.AddComment(c.Request.Context(), actor.UserID, c.Param("id"), req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, toCommentView(comment))
}

// FollowFeed lists posts from authors the caller follows.
// @Summary Follow feed
// @Tags posts
// @Produce json
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response{data=listingView}
// @Router /follow/ [get]
func (h *Handler) FollowFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	actor := identity(c)
	listing, err := h.content.FollowFeed(c.Request.Context(), actor.UserID, page, paginator.DefaultPageSize)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, toListingView(listing))
}
