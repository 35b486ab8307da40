package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// Handler handles user directory requests
type Handler struct {
	svc      *Service
	resolver *render.Resolver
}

// NewHandler creates a new users handler
func NewHandler(svc *Service, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func toResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
}

// List returns all users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	all, err := h.svc.List()
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	out := make([]UserResponse, len(all))
	for i := range all {
		out[i] = toResponse(&all[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one user by username
// @Summary Get a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{username} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.svc.GetByUsername(c.Param("username"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(user))
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:username", h.Get)
}
