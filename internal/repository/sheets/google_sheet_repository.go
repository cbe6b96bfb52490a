// Package sheets exports daily digests to a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/babytrack/internal/config"
	"github.com/mamadbah2/babytrack/internal/domain/models"
)

const (
	// DigestRange holds one row per baby per day:
	// date, baby id, name, age, feedings, most common food, weight, height, milestones.
	DigestRange = "Digests!A:I"
	digestKeys  = "Digests!A:B"
)

// DigestSheet appends digest rows to a spreadsheet.
type DigestSheet struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewDigestSheet builds a Sheets-backed digest exporter. Extra client options
// are appended after the credentials file, if one is configured.
func NewDigestSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*DigestSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &DigestSheet{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDigests writes the digests not yet present in the sheet and returns
// how many rows were added. A (date, baby id) pair is only ever written once.
func (s *DigestSheet) AppendDigests(ctx context.Context, digests []models.DailyDigest) (int, error) {
	existing, err := s.exportedKeys(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([][]interface{}, 0, len(digests))
	for _, d := range digests {
		key := digestKey(d.Date, strconv.FormatInt(d.BabyID, 10))
		if _, dup := existing[key]; dup {
			s.logger.Debug("digest already exported", zap.String("date", d.Date), zap.Int64("baby_id", d.BabyID))
			continue
		}
		existing[key] = struct{}{}
		rows = append(rows, digestRow(d))
	}
	if len(rows) == 0 {
		return 0, nil
	}

	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, DigestRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return 0, fmt.Errorf("append rows into range %s: %w", DigestRange, err)
	}

	s.logger.Debug("digest rows appended", zap.Int("rows", len(rows)))
	return len(rows), nil
}

func (s *DigestSheet) exportedKeys(ctx context.Context) (map[string]struct{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, digestKeys).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", digestKeys, err)
	}

	keys := make(map[string]struct{}, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) < 2 {
			continue
		}
		keys[digestKey(fmt.Sprint(row[0]), fmt.Sprint(row[1]))] = struct{}{}
	}
	return keys, nil
}

func digestKey(date, babyID string) string {
	return strings.TrimSpace(date) + "|" + strings.TrimSpace(babyID)
}

func digestRow(d models.DailyDigest) []interface{} {
	return []interface{}{
		d.Date,
		d.BabyID,
		d.BabyName,
		d.AgeLabel,
		d.FeedingCount,
		d.MostCommonFood,
		d.Weight,
		d.Height,
		fmt.Sprintf("%d/%d", d.MilestonesCompleted, d.MilestonesTotal),
	}
}
