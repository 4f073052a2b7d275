package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pulse/internal/service"
)

// Follow subscribes the caller to an author. Self-follow and repeat follows
// are no-ops; either way the caller lands back on the profile, matching the
// frontend flow.
// @Summary Follow author
// @Tags relations
// @Param username path string true "author username"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow/ [get]
func (h *Handler) Follow(c *gin.Context) {
	username := c.Param("username")
	actor := identity(c)
	err := h.relations.FollowByUsername(c.Request.Context(), actor.UserID, username)
	if err != nil && !errors.Is(err, service.ErrFollowSelf) {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// Unfollow removes the subscription; absent edges are a no-op.
// @Summary Unfollow author
// @Tags relations
// @Param username path string true "author username"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow/ [get]
func (h *Handler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	actor := identity(c)
	if err := h.relations.UnfollowByUsername(c.Request.Context(), actor.UserID, username); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
