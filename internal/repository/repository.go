// Package repository defines the storage contract shared by every backend.
//
// Lookups return (nil, nil) when the record does not exist and deletes report
// whether anything was removed; only unexpected failures surface as errors.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/babytrack/internal/domain/models"
)

// ErrParentNotFound indicates a create referenced a user or baby that does not exist.
var ErrParentNotFound = errors.New("parent record not found")

// ErrUsernameTaken indicates a user with the same username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore persists parent accounts.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
}

// BabyStore persists baby profiles. CreateBaby also seeds the default milestones.
type BabyStore interface {
	GetBaby(ctx context.Context, id int64) (*models.Baby, error)
	ListBabies(ctx context.Context) ([]models.Baby, error)
	ListBabiesByUser(ctx context.Context, userID int64) ([]models.Baby, error)
	CreateBaby(ctx context.Context, in models.InsertBaby) (*models.Baby, error)
	UpdateBaby(ctx context.Context, id int64, patch models.BabyPatch) (*models.Baby, error)
}

// FeedingLogStore persists feeding events.
type FeedingLogStore interface {
	GetFeedingLog(ctx context.Context, id int64) (*models.FeedingLog, error)
	ListFeedingLogsByBaby(ctx context.Context, babyID int64) ([]models.FeedingLog, error)
	CreateFeedingLog(ctx context.Context, in models.InsertFeedingLog) (*models.FeedingLog, error)
	DeleteFeedingLog(ctx context.Context, id int64) (bool, error)
}

// GrowthRecordStore persists measurements. CreateGrowthRecord also overwrites
// the owning baby's weight and height.
type GrowthRecordStore interface {
	GetGrowthRecord(ctx context.Context, id int64) (*models.GrowthRecord, error)
	ListGrowthRecordsByBaby(ctx context.Context, babyID int64) ([]models.GrowthRecord, error)
	CreateGrowthRecord(ctx context.Context, in models.InsertGrowthRecord) (*models.GrowthRecord, error)
	DeleteGrowthRecord(ctx context.Context, id int64) (bool, error)
}

// MilestoneStore persists developmental milestones.
type MilestoneStore interface {
	GetMilestone(ctx context.Context, id int64) (*models.Milestone, error)
	ListMilestonesByBaby(ctx context.Context, babyID int64) ([]models.Milestone, error)
	CreateMilestone(ctx context.Context, in models.InsertMilestone) (*models.Milestone, error)
	UpdateMilestone(ctx context.Context, id int64, patch models.MilestonePatch) (*models.Milestone, error)
}

// Storage is the full storage engine used by the service layer.
type Storage interface {
	UserStore
	BabyStore
	FeedingLogStore
	GrowthRecordStore
	MilestoneStore
}
