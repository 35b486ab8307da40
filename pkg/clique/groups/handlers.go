package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// Handler handles group-related requests
type Handler struct {
	svc      *Service
	resolver *render.Resolver
}

// NewHandler creates a new groups handler
func NewHandler(svc *Service, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// RenameGroupRequest represents the request to rename a group
type RenameGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	ChangeTo string `json:"change_to" binding:"required"`
}

// GroupResponse represents a group in API responses. Admin and members are
// rendered as usernames at this boundary.
type GroupResponse struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Admin   string   `json:"admin"`
	Members []string `json:"members"`
}

func (h *Handler) toResponse(group *models.Group) (GroupResponse, error) {
	memberships, err := h.svc.Members(group.ID)
	if err != nil {
		return GroupResponse{}, err
	}
	members := make([]string, len(memberships))
	for i, m := range memberships {
		members[i] = m.User.Username
	}
	return GroupResponse{
		ID:      group.ID,
		Name:    group.Name,
		Admin:   h.resolver.Username(group.AdminID),
		Members: members,
	}, nil
}

// Create creates a new group administered by the current user
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Empty name"
// @Failure 409 {object} map[string]string "Duplicate name"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.svc.Create(userID, req.Name)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	resp, err := h.toResponse(group)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the current user's administered groups, or one group by name
// @Summary List groups
// @Description Without ?name, lists groups the current user administers.
// @Description With ?name, returns that group if the user administers it.
// @Tags groups
// @Produce json
// @Param name query string false "Group name"
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	if name := c.Query("name"); name != "" {
		group, err := h.svc.GetByNameForAdmin(name, userID)
		if err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		resp, err := h.toResponse(group)
		if err != nil {
			render.Error(c, h.resolver, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	found, err := h.svc.Find(Query{ByAdmin: userID})
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	out := make([]GroupResponse, len(found))
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

// Rename changes a group's name (admin only)
// @Summary Rename a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body RenameGroupRequest true "Old and new name"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Not the admin"
// @Failure 409 {object} map[string]string "New name taken"
// @Security BearerAuth
// @Router /groups [patch]
func (h *Handler) Rename(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.svc.GetByName(req.Name)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RequireAdmin(userID, group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Rename(req.Name, req.ChangeTo); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group name changed from '" + req.Name + "' to '" + req.ChangeTo + "'!"})
}

// Delete removes a group by name (admin only)
// @Summary Delete a group
// @Tags groups
// @Produce json
// @Param name query string true "Group name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	group, err := h.svc.GetByName(c.Query("name"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RequireAdmin(userID, group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Delete(group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully!"})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PATCH("", h.Rename)
	rg.DELETE("", h.Delete)
}
