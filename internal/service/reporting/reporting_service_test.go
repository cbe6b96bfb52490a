package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/repository/memory"
)

type fakeSheet struct {
	got []models.DailyDigest
	err error
}

func (f *fakeSheet) AppendDigests(_ context.Context, digests []models.DailyDigest) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.got = append(f.got, digests...)
	return len(digests), nil
}

type fakeMessenger struct {
	to, body string
	err      error
}

func (f *fakeMessenger) SendText(_ context.Context, to, body string) (string, error) {
	f.to, f.body = to, body
	return "wamid.1", f.err
}

var reportDay = time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	user, err := store.CreateUser(ctx, models.User{Username: "parent", Password: "hash"})
	require.NoError(t, err)

	baby, err := store.CreateBaby(ctx, models.InsertBaby{
		Name: "Mia", Birthday: "2023-03-15", Weight: "9.1", Height: "74",
		FeedingType: "Solid Food", Restrictions: []string{}, UserID: user.ID,
	})
	require.NoError(t, err)

	for _, in := range []models.InsertFeedingLog{
		{Date: "2024-05-14", Time: "08:00", FoodName: "Pear"},
		{Date: "2024-05-15", Time: "08:00", FoodName: "Apple"},
		{Date: "2024-05-15", Time: "12:00", FoodName: "Apple"},
	} {
		in.BabyID, in.FoodType, in.Amount = baby.ID, "Puree", "2 tbsp"
		_, err := store.CreateFeedingLog(ctx, in)
		require.NoError(t, err)
	}

	done := true
	_, err = store.UpdateMilestone(ctx, 1, models.MilestonePatch{Completed: &done})
	require.NoError(t, err)
	return store
}

func TestGenerateDailyDigests(t *testing.T) {
	svc := NewService(seededStore(t), 1, nil, nil, "", zaptest.NewLogger(t))

	digests, err := svc.GenerateDailyDigests(context.Background(), reportDay)
	require.NoError(t, err)
	require.Len(t, digests, 1)

	assert.Equal(t, models.DailyDigest{
		Date:                "2024-05-15",
		BabyID:              1,
		BabyName:            "Mia",
		AgeLabel:            "14 months old",
		FeedingCount:        2,
		MostCommonFood:      "Apple",
		Weight:              "9.1",
		Height:              "74",
		MilestonesCompleted: 1,
		MilestonesTotal:     5,
	}, digests[0])
}

func TestDispatchDailyDigests(t *testing.T) {
	sheet := &fakeSheet{}
	messenger := &fakeMessenger{}
	svc := NewService(seededStore(t), 1, sheet, messenger, "224600000000", zaptest.NewLogger(t))

	require.NoError(t, svc.DispatchDailyDigests(context.Background(), reportDay))

	assert.Len(t, sheet.got, 1)
	assert.Equal(t, "224600000000", messenger.to)
	assert.Contains(t, messenger.body, "Daily digest for Mia (May 15, 2024)")
	assert.Contains(t, messenger.body, "Feedings today: 2")
	assert.Contains(t, messenger.body, "Milestones: 1/5 completed")
}

func TestDispatchKeepsGoingWhenASinkFails(t *testing.T) {
	sheet := &fakeSheet{err: errors.New("quota exceeded")}
	messenger := &fakeMessenger{}
	svc := NewService(seededStore(t), 1, sheet, messenger, "224600000000", zaptest.NewLogger(t))

	err := svc.DispatchDailyDigests(context.Background(), reportDay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.NotEmpty(t, messenger.body, "message still sent")
}

func TestDispatchWithoutBabies(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := NewService(memory.NewStore(), 1, nil, messenger, "224600000000", zaptest.NewLogger(t))

	require.NoError(t, svc.DispatchDailyDigests(context.Background(), reportDay))
	assert.Empty(t, messenger.body)
}

func TestDigestsCoverOnlyTheOwnersBabies(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	other, err := store.CreateUser(ctx, models.User{Username: "other", Password: "hash"})
	require.NoError(t, err)
	_, err = store.CreateBaby(ctx, models.InsertBaby{
		Name: "Noah", Birthday: "2024-01-02", Weight: "5", Height: "60",
		FeedingType: "Formula", Restrictions: []string{}, UserID: other.ID,
	})
	require.NoError(t, err)

	sheet := &fakeSheet{}
	messenger := &fakeMessenger{}
	svc := NewService(store, 1, sheet, messenger, "224600000000", zaptest.NewLogger(t))
	require.NoError(t, svc.DispatchDailyDigests(ctx, reportDay))

	require.Len(t, sheet.got, 1)
	assert.Equal(t, "Mia", sheet.got[0].BabyName)
	assert.Contains(t, messenger.body, "Daily digest for Mia")
	assert.NotContains(t, messenger.body, "Noah")

	otherSvc := NewService(store, other.ID, nil, nil, "", zaptest.NewLogger(t))
	digests, err := otherSvc.GenerateDailyDigests(ctx, reportDay)
	require.NoError(t, err)
	require.Len(t, digests, 1)
	assert.Equal(t, "Noah", digests[0].BabyName)
}

func TestFormatDigestsWithoutFeedings(t *testing.T) {
	text := FormatDigests([]models.DailyDigest{{Date: "2024-05-15", BabyName: "Leo", Weight: "3.4", Height: "50", MilestonesTotal: 5}})
	assert.Contains(t, text, "Most common food: none yet")
	assert.NotContains(t, text, "Age:")
}
