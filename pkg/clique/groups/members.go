package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// AddMemberRequest represents a request to add a member
type AddMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

// MemberResponse represents a group member in API responses
type MemberResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ListMembers returns the roster of a group
func (h *Handler) ListMembers(c *gin.Context) {
	group, err := h.svc.GetByName(c.Param("name"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	memberships, err := h.svc.Members(group.ID)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	members := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		members[i] = MemberResponse{
			ID:       m.User.ID,
			Username: m.User.Username,
			Name:     m.User.Name,
		}
	}
	c.JSON(http.StatusOK, members)
}

// AddMember adds a user to a group's roster (admin only)
func (h *Handler) AddMember(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupName := c.Param("name")

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.svc.GetByName(groupName)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RequireAdmin(userID, group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.AddMember(groupName, req.Username); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added successfully!"})
}

// RemoveMember removes a user from a group's roster (admin only)
func (h *Handler) RemoveMember(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupName := c.Param("name")

	group, err := h.svc.GetByName(groupName)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RequireAdmin(userID, group.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RemoveMember(groupName, c.Param("username")); err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully!"})
}

// RegisterMemberRoutes registers roster management routes
func (h *Handler) RegisterMemberRoutes(rg *gin.RouterGroup) {
	rg.GET("/:name/members", h.ListMembers)
	rg.POST("/:name/members", h.AddMember)
	rg.DELETE("/:name/members/:username", h.RemoveMember)
}
