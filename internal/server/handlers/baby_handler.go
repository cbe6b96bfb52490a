package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/babytrack/internal/domain/models"
)

// ListBabies returns the current parent's babies.
func (h *TrackerHandler) ListBabies(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	babies, err := h.svc.ListBabies(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, "list babies", err)
		return
	}
	c.JSON(http.StatusOK, babies)
}

// GetBaby returns one baby profile.
func (h *TrackerHandler) GetBaby(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	baby, err := h.svc.GetBaby(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, h.logger, "get baby", err)
		return
	}
	c.JSON(http.StatusOK, baby)
}

// CreateBaby stores a new profile; its default milestones come with it.
func (h *TrackerHandler) CreateBaby(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.InsertBaby
	if !h.bind(c, &req) {
		return
	}

	baby, err := h.svc.CreateBaby(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, h.logger, "create baby", err)
		return
	}
	c.JSON(http.StatusCreated, baby)
}

// UpdateBaby applies a partial profile edit.
func (h *TrackerHandler) UpdateBaby(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.BabyPatch
	if !h.bindPatch(c, &req) {
		return
	}

	baby, err := h.svc.UpdateBaby(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, h.logger, "update baby", err)
		return
	}
	c.JSON(http.StatusOK, baby)
}

// Summary returns the dashboard statistics of a baby.
func (h *TrackerHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, h.logger, "build summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Recommendations returns the age-appropriate schedule and foods.
func (h *TrackerHandler) Recommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recs, err := h.svc.Recommendations(c.Request.Context(), userID, id, c.Query("category"))
	if err != nil {
		fail(c, h.logger, "build recommendations", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
