package posts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// LinkFinder supplies link attachments for post responses.
type LinkFinder interface {
	ByTarget(postID uint) ([]models.Link, error)
}

// UserDirectory resolves the ?author query parameter.
type UserDirectory interface {
	GetByUsername(username string) (*models.User, error)
}

// Handler handles post-related requests
type Handler struct {
	svc      *Service
	cascade  *Cascade
	groups   GroupDirectory
	users    UserDirectory
	links    LinkFinder
	resolver *render.Resolver
}

// NewHandler creates a new posts handler
func NewHandler(svc *Service, cascade *Cascade, groups GroupDirectory, users UserDirectory, links LinkFinder, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, cascade: cascade, groups: groups, users: users, links: links, resolver: resolver}
}

// CreatePostRequest represents the request to create a post
type CreatePostRequest struct {
	Content string              `json:"content" binding:"required"`
	Group   string              `json:"group"`
	Options *models.PostOptions `json:"options"`
}

// PublishRequest represents the request to publish a post to a group
type PublishRequest struct {
	Group string `json:"group" binding:"required"`
}

// LinkAttachment is a link rendered inline on a post
type LinkAttachment struct {
	ID          uint   `json:"id"`
	URL         string `json:"url"`
	DisplayText string `json:"display_text"`
	Paywall     bool   `json:"paywall"`
}

// PostResponse represents a post in API responses. Author and groups are
// rendered as names at this boundary; dangling group ids render as the
// deleted-group sentinel.
type PostResponse struct {
	ID        uint                `json:"id"`
	Author    string              `json:"author"`
	Content   string              `json:"content"`
	Options   *models.PostOptions `json:"options,omitempty"`
	Groups    []string            `json:"groups"`
	Links     []LinkAttachment    `json:"links"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

func (h *Handler) toResponse(post *models.Post) (PostResponse, error) {
	groupIDs, err := h.svc.GroupIDs(post.ID)
	if err != nil {
		return PostResponse{}, err
	}

	attached, err := h.links.ByTarget(post.ID)
	if err != nil {
		return PostResponse{}, err
	}
	links := make([]LinkAttachment, len(attached))
	for i, l := range attached {
		links[i] = LinkAttachment{ID: l.ID, URL: l.URL, DisplayText: l.DisplayText, Paywall: l.Paywall}
	}

	return PostResponse{
		ID:        post.ID,
		Author:    h.resolver.Username(post.AuthorID),
		Content:   post.Content,
		Options:   post.Options,
		Groups:    h.resolver.GroupNames(groupIDs),
		Links:     links,
		CreatedAt: post.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: post.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (h *Handler) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

// List returns posts visible to the current user: posts published to a
// group the user belongs to, plus the user's own posts. The intersection
// with membership happens here, not inside the Visibility component.
// @Summary List visible posts
// @Tags posts
// @Produce json
// @Param author query string false "Filter by author username"
// @Success 200 {array} PostResponse
// @Security BearerAuth
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	memberGroupIDs, err := h.groups.MemberGroupIDs(userID)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	q := Query{InAnyGroup: memberGroupIDs, OrAuthoredBy: userID}
	if author := c.Query("author"); author != "" {
		authorUser, err := h.users.GetByUsername(author)
		if err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		q.ByAuthor = authorUser.ID
	}

	found, err := h.svc.Find(q)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	out := make([]PostResponse, len(found))
	for i := range found {
		resp, err := h.toResponse(&found[i])
		if err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		out[i] = resp
	}
	c.JSON(http.StatusOK, out)
}

// Create makes a new post
// @Summary Create a post
// @Description Publishes to the named group, or to every group the author
// @Description administers when no group is given.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post details"
// @Success 201 {object} PostResponse
// @Failure 404 {object} map[string]string "Named group does not exist"
// @Security BearerAuth
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.Create(userID, req.Content, req.Group, req.Options)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	resp, err := h.toResponse(post)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update applies a partial update to a post (author only). Fields outside
// content and options are rejected.
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Field not updatable"
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RequireAuthor(userID, postID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Update(postID, fields); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post successfully updated!"})
}

// Publish adds the post to one more group (group admin only)
// @Summary Publish a post to a group
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body PublishRequest true "Target group name"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Already published"
// @Security BearerAuth
// @Router /posts/{id}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groups.GetByNameForAdmin(req.Group, userID)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.PublishTo(postID, group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post published to " + group.Name + "!"})
}

// Delete removes a post. With ?group it only detaches that group (notes and
// links survive); without it the full cascade runs.
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param group query string false "Detach from this group only"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if groupName := c.Query("group"); groupName != "" {
		group, err := h.groups.GetByName(groupName)
		if err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		if err := h.groups.RequireAdmin(userID, group.ID); err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		if err := h.cascade.DeleteScoped(userID, postID, group.ID); err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post removed from " + group.Name + "!"})
		return
	}

	if err := h.cascade.Delete(userID, postID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully!"})
}

// RegisterRoutes registers post routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.POST("/:id/publish", h.Publish)
	rg.DELETE("/:id", h.Delete)
}
