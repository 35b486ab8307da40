package links

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// Handler handles link-related requests
type Handler struct {
	svc      *Service
	resolver *render.Resolver
}

// NewHandler creates a new links handler
func NewHandler(svc *Service, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	URL         string `json:"url" binding:"required,url"`
	DisplayText string `json:"display_text"`
	Post        uint   `json:"post" binding:"required"`
	Paywall     bool   `json:"paywall"`
}

// LinkResponse represents a link in API responses
type LinkResponse struct {
	ID          uint   `json:"id"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	DisplayText string `json:"display_text"`
	Post        uint   `json:"post"`
	Paywall     bool   `json:"paywall"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (h *Handler) toResponse(link *models.Link) LinkResponse {
	return LinkResponse{
		ID:          link.ID,
		Author:      h.resolver.Username(link.AuthorID),
		URL:         link.URL,
		DisplayText: link.DisplayText,
		Post:        link.TargetID,
		Paywall:     link.Paywall,
		CreatedAt:   link.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   link.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// List returns links, optionally filtered to one post
// @Summary List links
// @Tags links
// @Produce json
// @Param post query int false "Target post ID"
// @Success 200 {array} LinkResponse
// @Security BearerAuth
// @Router /links [get]
func (h *Handler) List(c *gin.Context) {
	var found []models.Link
	var err error

	if postParam := c.Query("post"); postParam != "" {
		postID, parseErr := strconv.ParseUint(postParam, 10, 32)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
			return
		}
		found, err = h.svc.ByTarget(uint(postID))
	} else {
		found, err = h.svc.All()
	}
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	out := make([]LinkResponse, len(found))
	for i := range found {
		out[i] = h.toResponse(&found[i])
	}
	c.JSON(http.StatusOK, out)
}

// Create attaches a link to a post
// @Summary Create a link
// @Tags links
// @Accept json
// @Produce json
// @Param request body CreateLinkRequest true "Link details"
// @Success 201 {object} LinkResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /links [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.svc.Create(userID, req.URL, req.DisplayText, req.Post, req.Paywall)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(link))
}

// Delete removes a link (author only)
// @Summary Delete a link
// @Tags links
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	if err := h.svc.RequireAuthor(userID, uint(linkID)); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Delete(uint(linkID)); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully!"})
}

// RegisterRoutes registers link routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
}
