package friends

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// UserDirectory resolves usernames in friend routes.
type UserDirectory interface {
	GetByUsername(username string) (*models.User, error)
}

// Handler handles friend-related requests
type Handler struct {
	svc      *Service
	users    UserDirectory
	resolver *render.Resolver
}

// NewHandler creates a new friends handler
func NewHandler(svc *Service, users UserDirectory, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, users: users, resolver: resolver}
}

// RequestResponse represents a pending friend request in API responses
type RequestResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	CreatedAt string `json:"created_at"`
}

// RequestsResponse splits pending requests by which side the current user
// occupies
type RequestsResponse struct {
	Incoming []RequestResponse `json:"incoming"`
	Outgoing []RequestResponse `json:"outgoing"`
}

// ListFriends returns the current user's friends as usernames
// @Summary List friends
// @Tags friends
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /friends [get]
func (h *Handler) ListFriends(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	friendIDs, err := h.svc.Friends(userID)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, h.resolver.Usernames(friendIDs))
}

// RemoveFriend unfriends the named user
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Param username path string true "Friend's username"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not friends"
// @Security BearerAuth
// @Router /friends/{username} [delete]
func (h *Handler) RemoveFriend(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	friend, err := h.users.GetByUsername(c.Param("username"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RemoveFriend(userID, friend.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed!"})
}

// ListRequests returns the current user's pending requests, split into
// incoming and outgoing
// @Summary List friend requests
// @Tags friends
// @Produce json
// @Success 200 {object} RequestsResponse
// @Security BearerAuth
// @Router /friend/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	edges, err := h.svc.Requests(userID)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}

	resp := RequestsResponse{
		Incoming: []RequestResponse{},
		Outgoing: []RequestResponse{},
	}
	for _, e := range edges {
		rr := RequestResponse{
			From:      h.resolver.Username(e.RequesterID),
			To:        h.resolver.Username(e.AddresseeID),
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if e.AddresseeID == userID {
			resp.Incoming = append(resp.Incoming, rr)
		} else {
			resp.Outgoing = append(resp.Outgoing, rr)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SendRequest sends a friend request to the named user
// @Summary Send a friend request
// @Tags friends
// @Produce json
// @Param to path string true "Recipient username"
// @Success 201 {object} map[string]string
// @Failure 409 {object} map[string]string "Already friends or already requested"
// @Security BearerAuth
// @Router /friend/requests/{to} [post]
func (h *Handler) SendRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	to, err := h.users.GetByUsername(c.Param("to"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.SendRequest(userID, to.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent!"})
}

// RemoveRequest withdraws a pending request the current user sent
// @Summary Withdraw a friend request
// @Tags friends
// @Produce json
// @Param to path string true "Recipient username"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No such request"
// @Security BearerAuth
// @Router /friend/requests/{to} [delete]
func (h *Handler) RemoveRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	to, err := h.users.GetByUsername(c.Param("to"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RemoveRequest(userID, to.ID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request removed!"})
}

// AcceptRequest accepts a pending request from the named user
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Param from path string true "Requester username"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No such request"
// @Security BearerAuth
// @Router /friend/accept/{from} [put]
func (h *Handler) AcceptRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	from, err := h.users.GetByUsername(c.Param("from"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.AcceptRequest(from.ID, userID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted!"})
}

// RejectRequest rejects a pending request from the named user
// @Summary Reject a friend request
// @Tags friends
// @Produce json
// @Param from path string true "Requester username"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No such request"
// @Security BearerAuth
// @Router /friend/reject/{from} [put]
func (h *Handler) RejectRequest(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	from, err := h.users.GetByUsername(c.Param("from"))
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.RejectRequest(from.ID, userID); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected!"})
}

// RegisterRoutes registers friend routes under /friends and /friend
func (h *Handler) RegisterRoutes(friendsGroup, friendGroup *gin.RouterGroup) {
	friendsGroup.GET("", h.ListFriends)
	friendsGroup.DELETE("/:username", h.RemoveFriend)

	friendGroup.GET("/requests", h.ListRequests)
	friendGroup.POST("/requests/:to", h.SendRequest)
	friendGroup.DELETE("/requests/:to", h.RemoveRequest)
	friendGroup.PUT("/accept/:from", h.AcceptRequest)
	friendGroup.PUT("/reject/:from", h.RejectRequest)
}
