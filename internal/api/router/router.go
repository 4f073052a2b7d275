// Package router assembles the gin engine and the route table.
package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/pulse/internal/api/handler"
	"github.com/d60-Lab/pulse/internal/api/middleware"
	"github.com/d60-Lab/pulse/internal/config"
	"github.com/d60-Lab/pulse/pkg/response"
)

// New builds the engine with gzip + tracing middleware and the full route
// table. Identity extraction runs on every request; enforcement only on the
// routes that need it.
func New(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("pulse"))
	r.Use(middleware.Extract(cfg.Auth.JWTSecret))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "page not found")
	})

	auth := middleware.RequireAuth(cfg.Auth.LoginURL)

	r.GET("/", h.Home)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/profile/:username/follow/", auth, h.Follow)
	r.GET("/profile/:username/unfollow/", auth, h.Unfollow)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/create/", auth, h.CreateForm)
	r.POST("/create/", auth, h.CreatePost)
	r.GET("/posts/:id/edit/", auth, h.EditForm)
	r.POST("/posts/:id/edit/", auth, h.EditPost)
	r.POST("/posts/:id/comment/", auth, h.AddComment)
	r.GET("/follow/", auth, h.FollowFeed)
	r.GET("/about/author/", h.AboutAuthor)
	r.GET("/about/tech/", h.AboutTech)

	return r
}
