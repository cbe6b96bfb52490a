// Package reporting builds the per-baby daily digest and ships it to the
// configured sinks.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/service/nutrition"
)

// DigestSource is the slice of the storage engine the digest reads.
type DigestSource interface {
	ListBabiesByUser(ctx context.Context, userID int64) ([]models.Baby, error)
	ListFeedingLogsByBaby(ctx context.Context, babyID int64) ([]models.FeedingLog, error)
	ListMilestonesByBaby(ctx context.Context, babyID int64) ([]models.Milestone, error)
}

// SheetExporter appends digest rows to a spreadsheet.
type SheetExporter interface {
	AppendDigests(ctx context.Context, digests []models.DailyDigest) (int, error)
}

// Messenger delivers a text message.
type Messenger interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Service produces daily digests.
type Service struct {
	source    DigestSource
	ownerID   int64
	sheet     SheetExporter
	messenger Messenger
	recipient string
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. Only babies of ownerID
// are reported. sheet and messenger may be nil to disable that sink.
func NewService(source DigestSource, ownerID int64, sheet SheetExporter, messenger Messenger, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		ownerID:   ownerID,
		sheet:     sheet,
		messenger: messenger,
		recipient: recipient,
		logger:    logger,
	}
}

// GenerateDailyDigests summarizes the owner's babies for the calendar day of day.
func (s *Service) GenerateDailyDigests(ctx context.Context, day time.Time) ([]models.DailyDigest, error) {
	babies, err := s.source.ListBabiesByUser(ctx, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("list babies: %w", err)
	}

	date := nutrition.CurrentDate(day)
	digests := make([]models.DailyDigest, 0, len(babies))

	for _, baby := range babies {
		logs, err := s.source.ListFeedingLogsByBaby(ctx, baby.ID)
		if err != nil {
			return nil, fmt.Errorf("list feeding logs for baby %d: %w", baby.ID, err)
		}
		milestones, err := s.source.ListMilestonesByBaby(ctx, baby.ID)
		if err != nil {
			return nil, fmt.Errorf("list milestones for baby %d: %w", baby.ID, err)
		}

		digest := models.DailyDigest{
			Date:            date,
			BabyID:          baby.ID,
			BabyName:        baby.Name,
			FeedingCount:    nutrition.FeedingCountForDay(logs, date),
			Weight:          baby.Weight,
			Height:          baby.Height,
			MilestonesTotal: len(milestones),
		}

		if birthday, err := nutrition.ParseDate(baby.Birthday); err != nil {
			s.logger.Warn("skip age for baby with invalid birthday", zap.Int64("baby_id", baby.ID), zap.Error(err))
		} else {
			digest.AgeLabel = nutrition.AgeLabel(birthday, day)
		}
		if food, ok := nutrition.MostCommonFood(logs); ok {
			digest.MostCommonFood = food
		}
		for _, m := range milestones {
			if m.Completed {
				digest.MilestonesCompleted++
			}
		}

		digests = append(digests, digest)
	}

	return digests, nil
}

// DispatchDailyDigests generates the day's digests and hands them to every
// enabled sink. A failing sink does not stop the others; the first error is
// returned.
func (s *Service) DispatchDailyDigests(ctx context.Context, day time.Time) error {
	digests, err := s.GenerateDailyDigests(ctx, day)
	if err != nil {
		return err
	}
	if len(digests) == 0 {
		s.logger.Info("no babies to report on", zap.Time("day", day))
		return nil
	}

	var firstErr error

	if s.sheet != nil {
		added, err := s.sheet.AppendDigests(ctx, digests)
		if err != nil {
			s.logger.Error("failed exporting digests to sheet", zap.Error(err))
			firstErr = fmt.Errorf("export digests: %w", err)
		} else {
			s.logger.Info("digests exported", zap.Int("rows", added))
		}
	}

	if s.messenger != nil && s.recipient != "" {
		id, err := s.messenger.SendText(ctx, s.recipient, FormatDigests(digests))
		if err != nil {
			s.logger.Error("failed sending digest message", zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("send digest: %w", err)
			}
		} else {
			s.logger.Info("digest message sent", zap.String("message_id", id))
		}
	}

	return firstErr
}

// FormatDigests renders digests as a chat message, one block per baby.
func FormatDigests(digests []models.DailyDigest) string {
	blocks := make([]string, 0, len(digests))
	for _, d := range digests {
		food := d.MostCommonFood
		if food == "" {
			food = "none yet"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Daily digest for %s (%s)\n", d.BabyName, nutrition.FormatDate(d.Date))
		if d.AgeLabel != "" {
			fmt.Fprintf(&b, "Age: %s\n", d.AgeLabel)
		}
		fmt.Fprintf(&b, "Feedings today: %d\n", d.FeedingCount)
		fmt.Fprintf(&b, "Most common food: %s\n", food)
		fmt.Fprintf(&b, "Weight: %s kg, Height: %s cm\n", d.Weight, d.Height)
		fmt.Fprintf(&b, "Milestones: %d/%d completed", d.MilestonesCompleted, d.MilestonesTotal)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
