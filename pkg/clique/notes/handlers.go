package notes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
)

// Handler handles note-related requests
type Handler struct {
	svc      *Service
	resolver *render.Resolver
}

// NewHandler creates a new notes handler
func NewHandler(svc *Service, resolver *render.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

// CreateNoteRequest represents the request to create a note
type CreateNoteRequest struct {
	Note string `json:"note" binding:"required"`
	Post uint   `json:"post" binding:"required"`
}

// UpdateNoteRequest represents the request to update a note
type UpdateNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID        uint   `json:"id"`
	Author    string `json:"author"`
	Note      string `json:"note"`
	Post      uint   `json:"post"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) toResponse(note *models.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Author:    h.resolver.Username(note.AuthorID),
		Note:      note.Body,
		Post:      note.TargetID,
		CreatedAt: note.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: note.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// List returns notes, optionally filtered to one post
// @Summary List notes
// @Tags notes
// @Produce json
// @Param post query int false "Target post ID"
// @Success 200 {array} NoteResponse
// @Security BearerAuth
// @Router /notes [get]
func (h *Handler) List(c *gin.Context) {
	var found []models.Note
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

	out := make([]NoteResponse, len(found))
	for i := range found {
		out[i] = h.toResponse(&found[i])
	}
	c.JSON(http.StatusOK, out)
}

// Create attaches a note to a post
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body CreateNoteRequest true "Note details"
// @Success 201 {object} NoteResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 409 {object} map[string]string "Post already has a note"
// @Security BearerAuth
// @Router /notes [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.svc.Create(userID, req.Note, req.Post)
	if err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(note))
}

// Update replaces a note's text (author only)
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "New text"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /notes/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RequireAuthor(userID, uint(noteID)); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Update(uint(noteID), req.Note); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note successfully updated!"})
}

// Delete removes a note (author only)
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return
	}

	if err := h.svc.RequireAuthor(userID, uint(noteID)); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	if err := h.svc.Delete(uint(noteID)); err != nil {
		render.Error(c, h.resolver, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully!"})
}

// RegisterRoutes registers note routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
