// Package handler maps the HTTP surface onto the content and relationship
// services.
package handler

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/pulse/internal/api/middleware"
	"github.com/d60-Lab/pulse/internal/cache"
	"github.com/d60-Lab/pulse/internal/model"
	"github.com/d60-Lab/pulse/internal/service"
	"github.com/d60-Lab/pulse/pkg/logger"
	"github.com/d60-Lab/pulse/pkg/response"
)

type Handler struct {
	content   service.ContentService
	relations service.RelationshipService
	feedCache cache.FeedCache
}

func New(content service.ContentService, relations service.RelationshipService, feedCache cache.FeedCache) *Handler {
	return &Handler{content: content, relations: relations, feedCache: feedCache}
}

type postView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Group     string    `json:"group,omitempty"`
	Image     string    `json:"image,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type commentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type listingView struct {
	Items      []postView `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

func toPostView(p *model.Post) postView {
	v := postView{
		ID:        p.ID,
		Text:      p.Text,
		Author:    p.AuthorID,
		Image:     p.Image,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		v.Author = p.Author.Username
	}
	if p.Group != nil {
		v.Group = p.Group.Slug
	}
	return v
}

func toCommentView(cm *model.Comment) commentView {
	v := commentView{ID: cm.ID, Text: cm.Text, Author: cm.AuthorID, CreatedAt: cm.CreatedAt}
	if cm.Author != nil {
		v.Author = cm.Author.Username
	}
	return v
}

func toListingView(page service.PostPage) listingView {
	items := make([]postView, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toPostView(p))
	}
	return listingView{Items: items, Page: page.Page, TotalPages: page.TotalPages}
}

// renderError translates service errors into the response envelope.
// Forbidden and self-follow are handled at their call sites as redirects.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		sentry.CaptureException(err)
		response.InternalError(c, err)
	}
}

func identity(c *gin.Context) middleware.Identity {
	id, _ := middleware.CurrentUser(c)
	return id
}
