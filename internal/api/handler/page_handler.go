package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pulse/pkg/response"
)

// AboutAuthor is a static informational page.
// @Summary About the author
// @Tags pages
// @Success 200 {object} response.Response
// @Router /about/author/ [get]
func (h *Handler) AboutAuthor(c *gin.Context) {
	response.Success(c, gin.H{"page": "about-author"})
}

// AboutTech is a static informational page.
// @Summary About the stack
// @Tags pages
// @Success 200 {object} response.Response
// @Router /about/tech/ [get]
func (h *Handler) AboutTech(c *gin.Context) {
	response.Success(c, gin.H{"page": "about-tech"})
}
