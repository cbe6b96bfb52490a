package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/babytrack/internal/domain/models"
)

// ListFeedingLogs returns a baby's feeding history.
func (h *TrackerHandler) ListFeedingLogs(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	babyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	logs, err := h.svc.ListFeedingLogs(c.Request.Context(), userID, babyID)
	if err != nil {
		fail(c, h.logger, "list feeding logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateFeedingLog records a feeding.
func (h *TrackerHandler) CreateFeedingLog(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	babyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.InsertFeedingLog
	if !h.bind(c, &req) {
		return
	}

	log, err := h.svc.CreateFeedingLog(c.Request.Context(), userID, babyID, req)
	if err != nil {
		fail(c, h.logger, "create feeding log", err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// DeleteFeedingLog removes a feeding.
func (h *TrackerHandler) DeleteFeedingLog(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteFeedingLog(c.Request.Context(), userID, id); err != nil {
		fail(c, h.logger, "delete feeding log", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGrowthRecords returns a baby's measurements.
func (h *TrackerHandler) ListGrowthRecords(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	babyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	records, err := h.svc.ListGrowthRecords(c.Request.Context(), userID, babyID)
	if err != nil {
		fail(c, h.logger, "list growth records", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateGrowthRecord stores a measurement and refreshes the profile.
func (h *TrackerHandler) CreateGrowthRecord(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	babyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.InsertGrowthRecord
	if !h.bind(c, &req) {
		return
	}

	record, err := h.svc.CreateGrowthRecord(c.Request.Context(), userID, babyID, req)
	if err != nil {
		fail(c, h.logger, "create growth record", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// DeleteGrowthRecord removes a measurement.
func (h *TrackerHandler) DeleteGrowthRecord(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteGrowthRecord(c.Request.Context(), userID, id); err != nil {
		fail(c, h.logger, "delete growth record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMilestones returns a baby's milestones.
func (h *TrackerHandler) ListMilestones(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	babyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	milestones, err := h.svc.ListMilestones(c.Request.Context(), userID, babyID)
	if err != nil {
		fail(c, h.logger, "list milestones", err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

// UpdateMilestone toggles completion. A null completedDate clears it.
func (h *TrackerHandler) UpdateMilestone(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.MilestonePatch
	if !h.bindPatch(c, &req) {
		return
	}

	milestone, err := h.svc.UpdateMilestone(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, h.logger, "update milestone", err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}
