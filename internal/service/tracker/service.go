// Package tracker orchestrates the storage engine for the HTTP layer: it
// scopes every lookup to the calling parent, turns absent records into
// sentinel errors and assembles the derived views.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBabyNotFound         = errors.New("baby not found")
	ErrFeedingLogNotFound   = errors.New("feeding log not found")
	ErrGrowthRecordNotFound = errors.New("growth record not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidAccount       = errors.New("username and password are required")
)

// Service is the application layer over repository.Storage.
type Service struct {
	store  repository.Storage
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a tracker service. Derived views evaluate "today" in loc.
func NewService(store repository.Storage, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// EnsureDefaultUser creates the household account used when authentication
// is disabled. An existing account with the same username is returned as is.
func (s *Service) EnsureDefaultUser(ctx context.Context, username, password string) (*models.User, error) {
	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup default user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.Register(ctx, models.InsertUser{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("create default user: %w", err)
	}
	s.logger.Info("default user created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Register creates a parent account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in models.InsertUser) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ErrInvalidAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, models.User{Username: username, Password: string(hash)})
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a parent account.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListBabies returns the parent's babies in creation order.
func (s *Service) ListBabies(ctx context.Context, userID int64) ([]models.Baby, error) {
	babies, err := s.store.ListBabiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list babies: %w", err)
	}
	return babies, nil
}

// GetBaby returns a baby owned by userID. Another parent's baby is reported
// as not found.
func (s *Service) GetBaby(ctx context.Context, userID, id int64) (*models.Baby, error) {
	baby, err := s.store.GetBaby(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get baby: %w", err)
	}
	if baby == nil || baby.UserID != userID {
		return nil, ErrBabyNotFound
	}
	return baby, nil
}

// CreateBaby stores a profile for userID along with its default milestones.
func (s *Service) CreateBaby(ctx context.Context, userID int64, in models.InsertBaby) (*models.Baby, error) {
	in.UserID = userID
	baby, err := s.store.CreateBaby(ctx, in)
	if errors.Is(err, repository.ErrParentNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create baby: %w", err)
	}
	s.logger.Info("baby created", zap.Int64("baby_id", baby.ID), zap.Int64("user_id", userID))
	return baby, nil
}

// UpdateBaby applies a partial profile edit.
func (s *Service) UpdateBaby(ctx context.Context, userID, id int64, patch models.BabyPatch) (*models.Baby, error) {
	if _, err := s.GetBaby(ctx, userID, id); err != nil {
		return nil, err
	}

	baby, err := s.store.UpdateBaby(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update baby: %w", err)
	}
	if baby == nil {
		return nil, ErrBabyNotFound
	}
	return baby, nil
}

// ListFeedingLogs returns a baby's feeding history in creation order.
func (s *Service) ListFeedingLogs(ctx context.Context, userID, babyID int64) ([]models.FeedingLog, error) {
	if _, err := s.GetBaby(ctx, userID, babyID); err != nil {
		return nil, err
	}

	logs, err := s.store.ListFeedingLogsByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	return logs, nil
}

// CreateFeedingLog records a feeding for babyID.
func (s *Service) CreateFeedingLog(ctx context.Context, userID, babyID int64, in models.InsertFeedingLog) (*models.FeedingLog, error) {
	if _, err := s.GetBaby(ctx, userID, babyID); err != nil {
		return nil, err
	}

	in.BabyID = babyID
	log, err := s.store.CreateFeedingLog(ctx, in)
	if errors.Is(err, repository.ErrParentNotFound) {
		return nil, ErrBabyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create feeding log: %w", err)
	}
	return log, nil
}

// DeleteFeedingLog removes a feeding owned, through its baby, by userID.
func (s *Service) DeleteFeedingLog(ctx context.Context, userID, id int64) error {
	log, err := s.store.GetFeedingLog(ctx, id)
	if err != nil {
		return fmt.Errorf("get feeding log: %w", err)
	}
	if log == nil {
		return ErrFeedingLogNotFound
	}
	if _, err := s.GetBaby(ctx, userID, log.BabyID); err != nil {
		if errors.Is(err, ErrBabyNotFound) {
			return ErrFeedingLogNotFound
		}
		return err
	}

	removed, err := s.store.DeleteFeedingLog(ctx, id)
	if err != nil {
		return fmt.Errorf("delete feeding log: %w", err)
	}
	if !removed {
		return ErrFeedingLogNotFound
	}
	return nil
}

// ListGrowthRecords returns a baby's measurements in creation order.
func (s *Service) ListGrowthRecords(ctx context.Context, userID, babyID int64) ([]models.GrowthRecord, error) {
	if _, err := s.GetBaby(ctx, userID, babyID); err != nil {
		return nil, err
	}

	records, err := s.store.ListGrowthRecordsByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("list growth records: %w", err)
	}
	return records, nil
}

// CreateGrowthRecord stores a measurement; the baby's profile picks up the
// new weight and height in the same step.
func (s *Service) CreateGrowthRecord(ctx context.Context, userID, babyID int64, in models.InsertGrowthRecord) (*models.GrowthRecord, error) {
	if _, err := s.GetBaby(ctx, userID, babyID); err != nil {
		return nil, err
	}

	in.BabyID = babyID
	record, err := s.store.CreateGrowthRecord(ctx, in)
	if errors.Is(err, repository.ErrParentNotFound) {
		return nil, ErrBabyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create growth record: %w", err)
	}
	return record, nil
}

// DeleteGrowthRecord removes a measurement. The baby's current weight and
// height are left as they are.
func (s *Service) DeleteGrowthRecord(ctx context.Context, userID, id int64) error {
	record, err := s.store.GetGrowthRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("get growth record: %w", err)
	}
	if record == nil {
		return ErrGrowthRecordNotFound
	}
	if _, err := s.GetBaby(ctx, userID, record.BabyID); err != nil {
		if errors.Is(err, ErrBabyNotFound) {
			return ErrGrowthRecordNotFound
		}
		return err
	}

	removed, err := s.store.DeleteGrowthRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("delete growth record: %w", err)
	}
	if !removed {
		return ErrGrowthRecordNotFound
	}
	return nil
}

// ListMilestones returns a baby's milestones in creation order.
func (s *Service) ListMilestones(ctx context.Context, userID, babyID int64) ([]models.Milestone, error) {
	if _, err := s.GetBaby(ctx, userID, babyID); err != nil {
		return nil, err
	}

	milestones, err := s.store.ListMilestonesByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}

// UpdateMilestone toggles completion and sets or clears the completion date.
func (s *Service) UpdateMilestone(ctx context.Context, userID, id int64, patch models.MilestonePatch) (*models.Milestone, error) {
	current, err := s.store.GetMilestone(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get milestone: %w", err)
	}
	if current == nil {
		return nil, ErrMilestoneNotFound
	}
	if _, err := s.GetBaby(ctx, userID, current.BabyID); err != nil {
		if errors.Is(err, ErrBabyNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}

	milestone, err := s.store.UpdateMilestone(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update milestone: %w", err)
	}
	if milestone == nil {
		return nil, ErrMilestoneNotFound
	}
	return milestone, nil
}
