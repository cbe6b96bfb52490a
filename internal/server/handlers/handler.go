package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/server/middleware"
	"github.com/mamadbah2/babytrack/internal/service/tracker"
)

// TrackerService is the application layer consumed by the API handlers.
type TrackerService interface {
	ListBabies(ctx context.Context, userID int64) ([]models.Baby, error)
	GetBaby(ctx context.Context, userID, id int64) (*models.Baby, error)
	CreateBaby(ctx context.Context, userID int64, in models.InsertBaby) (*models.Baby, error)
	UpdateBaby(ctx context.Context, userID, id int64, patch models.BabyPatch) (*models.Baby, error)

	ListFeedingLogs(ctx context.Context, userID, babyID int64) ([]models.FeedingLog, error)
	CreateFeedingLog(ctx context.Context, userID, babyID int64, in models.InsertFeedingLog) (*models.FeedingLog, error)
	DeleteFeedingLog(ctx context.Context, userID, id int64) error

	ListGrowthRecords(ctx context.Context, userID, babyID int64) ([]models.GrowthRecord, error)
	CreateGrowthRecord(ctx context.Context, userID, babyID int64, in models.InsertGrowthRecord) (*models.GrowthRecord, error)
	DeleteGrowthRecord(ctx context.Context, userID, id int64) error

	ListMilestones(ctx context.Context, userID, babyID int64) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, userID, id int64, patch models.MilestonePatch) (*models.Milestone, error)

	Summary(ctx context.Context, userID, babyID int64) (*tracker.Summary, error)
	Recommendations(ctx context.Context, userID, babyID int64, category string) (*tracker.Recommendations, error)
}

// TrackerHandler serves the /api resources.
type TrackerHandler struct {
	svc    TrackerService
	logger *zap.Logger
}

// NewTrackerHandler constructs the API handler adapter.
func NewTrackerHandler(svc TrackerService, logger *zap.Logger) *TrackerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterValidators()
	return &TrackerHandler{svc: svc, logger: logger}
}

var registerOnce sync.Once

// RegisterValidators teaches gin's validator to look inside NullableString
// so that tags like datetime apply to the wrapped value.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if n, ok := field.Interface().(models.NullableString); ok {
				return n.ValidationValue()
			}
			return nil
		}, models.NullableString{})
	})
}

// pathID parses a positive integer route parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
	return id, ok
}

func (h *TrackerHandler) bind(c *gin.Context, dst interface{}) bool {
	return h.respondBindError(c, c.ShouldBindJSON(dst))
}

// bindPatch is bind for partial updates: an empty body is an empty patch.
func (h *TrackerHandler) bindPatch(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	return h.respondBindError(c, err)
}

func (h *TrackerHandler) respondBindError(c *gin.Context, err error) bool {
	if err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}
	return true
}

// fail maps service errors onto HTTP status codes.
func fail(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, tracker.ErrBabyNotFound),
		errors.Is(err, tracker.ErrFeedingLogNotFound),
		errors.Is(err, tracker.ErrGrowthRecordNotFound),
		errors.Is(err, tracker.ErrMilestoneNotFound),
		errors.Is(err, tracker.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrInvalidAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + op})
	}
}
