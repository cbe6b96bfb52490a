package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/babytrack/internal/auth"
	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/repository/memory"
	"github.com/mamadbah2/babytrack/internal/server/handlers"
	"github.com/mamadbah2/babytrack/internal/server/middleware"
	"github.com/mamadbah2/babytrack/internal/service/tracker"
)

const babyBody = `{"name":"Mia","birthday":"2024-01-10","weight":"7.5","height":"66","feedingType":"Formula","restrictions":["Dairy"]}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, withAuth bool) *gin.Engine {
	t.Helper()
	logger := zaptest.NewLogger(t)

	svc := tracker.NewService(memory.NewStore(), time.UTC, logger)
	user, err := svc.EnsureDefaultUser(context.Background(), "parent", "secret")
	require.NoError(t, err)

	deps := Deps{Tracker: handlers.NewTrackerHandler(svc, logger)}
	if withAuth {
		tokens := auth.NewTokenManager("test-secret", time.Hour)
		deps.Auth = handlers.NewAuthHandler(svc, tokens, logger)
		deps.Identity = middleware.RequireToken(tokens, logger)
	} else {
		deps.Identity = middleware.DefaultUser(user.ID)
	}
	return New(deps, logger)
}

func do(engine *gin.Engine, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(newEngine(t, false), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBabyEndpoints(t *testing.T) {
	engine := newEngine(t, false)

	rec := do(engine, http.MethodPost, "/api/babies", babyBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	baby := decode[models.Baby](t, rec)
	assert.Equal(t, int64(1), baby.ID)
	assert.Equal(t, int64(1), baby.UserID)
	assert.Equal(t, []string{"Dairy"}, baby.Restrictions)

	rec = do(engine, http.MethodGet, "/api/babies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Baby](t, rec), 1)

	rec = do(engine, http.MethodGet, "/api/babies/1/milestones", "")
	require.Equal(t, http.StatusOK, rec.Code)
	milestones := decode[[]models.Milestone](t, rec)
	require.Len(t, milestones, 5)
	assert.Equal(t, "First Solids", milestones[0].Name)

	rec = do(engine, http.MethodPatch, "/api/babies/1", `{"name":"Mila"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mila", decode[models.Baby](t, rec).Name)

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/api/babies/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/api/babies/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/api/babies/99/feeding-logs", "").Code)
}

func TestEmptyListsAreArrays(t *testing.T) {
	engine := newEngine(t, false)

	rec := do(engine, http.MethodGet, "/api/babies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestValidationFailures(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing name", http.MethodPost, "/api/babies", `{"birthday":"2024-01-10","weight":"7.5","height":"66","feedingType":"Formula","restrictions":[]}`},
		{"bad birthday", http.MethodPost, "/api/babies", `{"name":"Mia","birthday":"10/01/2024","weight":"7.5","height":"66","feedingType":"Formula","restrictions":[]}`},
		{"non numeric weight", http.MethodPatch, "/api/babies/1", `{"weight":"heavy"}`},
		{"bad feeding time", http.MethodPost, "/api/babies/1/feeding-logs", `{"date":"2024-05-01","time":"8am","foodType":"Puree","foodName":"Apple","amount":"2 tbsp"}`},
		{"growth without height", http.MethodPost, "/api/babies/1/growth-records", `{"date":"2024-05-01","weight":"8"}`},
		{"bad completed date", http.MethodPatch, "/api/milestones/1", `{"completed":true,"completedDate":"2024/05/01"}`},
		{"malformed json", http.MethodPost, "/api/babies", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(engine, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestFeedingLogEndpoints(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	rec := do(engine, http.MethodPost, "/api/babies/1/feeding-logs", `{"date":"2024-05-01","time":"08:30","foodType":"Puree","foodName":"Apple","amount":"2 tbsp","notes":"liked it"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	log := decode[models.FeedingLog](t, rec)
	assert.Equal(t, int64(1), log.BabyID)
	require.NotNil(t, log.Notes)

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodPost, "/api/babies/7/feeding-logs", `{"date":"2024-05-01","time":"08:30","foodType":"Puree","foodName":"Apple","amount":"2 tbsp"}`).Code)

	assert.Equal(t, http.StatusNoContent, do(engine, http.MethodDelete, "/api/feeding-logs/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodDelete, "/api/feeding-logs/1", "").Code)
}

func TestGrowthRecordUpdatesBaby(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	rec := do(engine, http.MethodPost, "/api/babies/1/growth-records", `{"date":"2024-05-01","weight":"8.2","height":"68"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	baby := decode[models.Baby](t, do(engine, http.MethodGet, "/api/babies/1", ""))
	assert.Equal(t, "8.2", baby.Weight)
	assert.Equal(t, "68", baby.Height)

	rec = do(engine, http.MethodGet, "/api/babies/1/growth-records", "")
	assert.Len(t, decode[[]models.GrowthRecord](t, rec), 1)

	assert.Equal(t, http.StatusNoContent, do(engine, http.MethodDelete, "/api/growth-records/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodDelete, "/api/growth-records/1", "").Code)
}

func TestMilestoneCompletedDate(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	rec := do(engine, http.MethodPatch, "/api/milestones/2", `{"completed":true,"completedDate":"2024-05-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := decode[models.Milestone](t, rec)
	assert.True(t, m.Completed)
	require.NotNil(t, m.CompletedDate)
	assert.Equal(t, "2024-05-01", *m.CompletedDate)

	rec = do(engine, http.MethodPatch, "/api/milestones/2", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decode[models.Milestone](t, rec).CompletedDate, "absent date is kept")

	rec = do(engine, http.MethodPatch, "/api/milestones/2", `{"completed":false,"completedDate":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	m = decode[models.Milestone](t, rec)
	assert.False(t, m.Completed)
	assert.Nil(t, m.CompletedDate)

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodPatch, "/api/milestones/77", `{"completed":true}`).Code)
}

func TestEmptyPatchBodyIsANoOp(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	for _, path := range []string{"/api/babies/1", "/api/milestones/1"} {
		empty := do(engine, http.MethodPatch, path, "")
		require.Equal(t, http.StatusOK, empty.Code, empty.Body.String())
		braces := do(engine, http.MethodPatch, path, `{}`)
		require.Equal(t, http.StatusOK, braces.Code)
		assert.JSONEq(t, braces.Body.String(), empty.Body.String())
	}

	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPatch, "/api/babies/1", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodPatch, "/api/babies/9", "").Code)
}

func TestDerivedViews(t *testing.T) {
	engine := newEngine(t, false)
	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/babies", babyBody).Code)

	rec := do(engine, http.MethodGet, "/api/babies/1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[tracker.Summary](t, rec)
	assert.Len(t, summary.LastSevenDays, 7)
	assert.Nil(t, summary.MostCommonFood)
	assert.Equal(t, 5, summary.MilestonesTotal)

	rec = do(engine, http.MethodGet, "/api/babies/1/recommendations?category=Grains", "")
	require.Equal(t, http.StatusOK, rec.Code)
	recs := decode[tracker.Recommendations](t, rec)
	assert.NotEmpty(t, recs.Schedule)
	assert.Len(t, recs.Foods, 2)

	rec = do(engine, http.MethodGet, "/api/foods?category=Dairy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decode[struct {
		Categories []string `json:"categories"`
		Foods      []struct {
			Name string `json:"name"`
		} `json:"foods"`
	}](t, rec)
	assert.Len(t, catalog.Categories, 6)
	require.Len(t, catalog.Foods, 1)
	assert.Equal(t, "Greek Yogurt", catalog.Foods[0].Name)

	rec = do(engine, http.MethodGet, "/api/vocabulary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Breast Milk")
	assert.Contains(t, rec.Body.String(), "tbsp")

	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/api/foods/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/api/foods/30", "").Code)
}

func TestTokenAuthentication(t *testing.T) {
	engine := newEngine(t, true)

	assert.Equal(t, http.StatusUnauthorized, do(engine, http.MethodGet, "/api/babies", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(engine, http.MethodGet, "/api/babies", "", "Authorization", "Bearer nope").Code)

	rec := do(engine, http.MethodPost, "/api/auth/register", `{"username":"second","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}](t, rec)
	assert.Equal(t, int64(2), registered.User.ID)
	assert.NotContains(t, rec.Body.String(), "password")

	assert.Equal(t, http.StatusConflict, do(engine, http.MethodPost, "/api/auth/register", `{"username":"second","password":"pw"}`).Code)
	blank := do(engine, http.MethodPost, "/api/auth/register", `{"username":"   ","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, blank.Code)
	assert.Contains(t, blank.Body.String(), "username and password are required")
	assert.Equal(t, http.StatusUnauthorized, do(engine, http.MethodPost, "/api/auth/login", `{"username":"parent","password":"wrong"}`).Code)

	rec = do(engine, http.MethodPost, "/api/auth/login", `{"username":"parent","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	parentToken := decode[struct {
		Token string `json:"token"`
	}](t, rec).Token

	rec = do(engine, http.MethodPost, "/api/babies", babyBody, "Authorization", "Bearer "+parentToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(engine, http.MethodGet, "/api/babies/1", "", "Authorization", "Bearer "+registered.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code, "another parent's baby is hidden")

	rec = do(engine, http.MethodGet, "/api/babies", "", "Authorization", "Bearer "+registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
