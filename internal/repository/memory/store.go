// Package memory provides the in-process storage engine: one id-keyed
// collection per entity type, each with its own monotonic id counter.
package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/repository"
)

var _ repository.Storage = (*Store)(nil)

// collection keeps records by id and remembers insertion order.
type collection[T any] struct {
	items  map[int64]T
	order  []int64
	nextID int64
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[int64]T), nextID: 1}
}

func (c *collection[T]) allocate() int64 {
	id := c.nextID
	c.nextID++
	return id
}

func (c *collection[T]) put(id int64, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *collection[T]) get(id int64) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) remove(id int64) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) filter(match func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range c.order {
		v := c.items[id]
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Store is the in-memory implementation of repository.Storage. A single lock
// guards every collection so multi-entity flows are atomic to other callers.
type Store struct {
	mu            sync.RWMutex
	users         *collection[models.User]
	babies        *collection[models.Baby]
	feedingLogs   *collection[models.FeedingLog]
	growthRecords *collection[models.GrowthRecord]
	milestones    *collection[models.Milestone]
}

// NewStore creates an empty store with every id counter at 1.
func NewStore() *Store {
	return &Store{
		users:         newCollection[models.User](),
		babies:        newCollection[models.Baby](),
		feedingLogs:   newCollection[models.FeedingLog](),
		growthRecords: newCollection[models.GrowthRecord](),
		milestones:    newCollection[models.Milestone](),
	}
}

// GetUser implements repository.UserStore.
func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.get(id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByUsername implements repository.UserStore.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findUserByUsername(username), nil
}

// CreateUser implements repository.UserStore.
func (s *Store) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByUsername(user.Username) != nil {
		return nil, repository.ErrUsernameTaken
	}

	user.ID = s.users.allocate()
	s.users.put(user.ID, user)
	return &user, nil
}

func (s *Store) findUserByUsername(username string) *models.User {
	matches := s.users.filter(func(u models.User) bool { return u.Username == username })
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// GetBaby implements repository.BabyStore.
func (s *Store) GetBaby(_ context.Context, id int64) (*models.Baby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	baby, ok := s.babies.get(id)
	if !ok {
		return nil, nil
	}
	baby = baby.Clone()
	return &baby, nil
}

// ListBabies implements repository.BabyStore.
func (s *Store) ListBabies(_ context.Context) ([]models.Baby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneBabies(s.babies.filter(func(models.Baby) bool { return true })), nil
}

// ListBabiesByUser implements repository.BabyStore.
func (s *Store) ListBabiesByUser(_ context.Context, userID int64) ([]models.Baby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneBabies(s.babies.filter(func(b models.Baby) bool { return b.UserID == userID })), nil
}

// CreateBaby implements repository.BabyStore. The baby and its default
// milestones become visible together.
func (s *Store) CreateBaby(_ context.Context, in models.InsertBaby) (*models.Baby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users.get(in.UserID); !ok {
		return nil, repository.ErrParentNotFound
	}

	baby := models.NewBaby(s.babies.allocate(), in)
	s.babies.put(baby.ID, baby)

	for _, tpl := range models.DefaultMilestones(baby.ID) {
		s.insertMilestone(tpl)
	}

	baby = baby.Clone()
	return &baby, nil
}

// UpdateBaby implements repository.BabyStore.
func (s *Store) UpdateBaby(_ context.Context, id int64, patch models.BabyPatch) (*models.Baby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	baby, ok := s.updateBaby(id, patch)
	if !ok {
		return nil, nil
	}
	return &baby, nil
}

func (s *Store) updateBaby(id int64, patch models.BabyPatch) (models.Baby, bool) {
	baby, ok := s.babies.get(id)
	if !ok {
		return models.Baby{}, false
	}
	baby = baby.Clone()
	patch.Apply(&baby)
	s.babies.put(id, baby)
	return baby.Clone(), true
}

// GetFeedingLog implements repository.FeedingLogStore.
func (s *Store) GetFeedingLog(_ context.Context, id int64) (*models.FeedingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.feedingLogs.get(id)
	if !ok {
		return nil, nil
	}
	log = log.Clone()
	return &log, nil
}

// ListFeedingLogsByBaby implements repository.FeedingLogStore.
func (s *Store) ListFeedingLogsByBaby(_ context.Context, babyID int64) ([]models.FeedingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := s.feedingLogs.filter(func(l models.FeedingLog) bool { return l.BabyID == babyID })
	for i := range logs {
		logs[i] = logs[i].Clone()
	}
	return logs, nil
}

// CreateFeedingLog implements repository.FeedingLogStore.
func (s *Store) CreateFeedingLog(_ context.Context, in models.InsertFeedingLog) (*models.FeedingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.babies.get(in.BabyID); !ok {
		return nil, repository.ErrParentNotFound
	}

	log := models.NewFeedingLog(s.feedingLogs.allocate(), in)
	s.feedingLogs.put(log.ID, log)

	log = log.Clone()
	return &log, nil
}

// DeleteFeedingLog implements repository.FeedingLogStore.
func (s *Store) DeleteFeedingLog(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedingLogs.remove(id), nil
}

// GetGrowthRecord implements repository.GrowthRecordStore.
func (s *Store) GetGrowthRecord(_ context.Context, id int64) (*models.GrowthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.growthRecords.get(id)
	if !ok {
		return nil, nil
	}
	record = record.Clone()
	return &record, nil
}

// ListGrowthRecordsByBaby implements repository.GrowthRecordStore.
func (s *Store) ListGrowthRecordsByBaby(_ context.Context, babyID int64) ([]models.GrowthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.growthRecords.filter(func(r models.GrowthRecord) bool { return r.BabyID == babyID })
	for i := range records {
		records[i] = records[i].Clone()
	}
	return records, nil
}

// CreateGrowthRecord implements repository.GrowthRecordStore. The record and
// the baby's new measurements are committed under the same lock.
func (s *Store) CreateGrowthRecord(_ context.Context, in models.InsertGrowthRecord) (*models.GrowthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.babies.get(in.BabyID); !ok {
		return nil, repository.ErrParentNotFound
	}

	record := models.NewGrowthRecord(s.growthRecords.allocate(), in)
	s.growthRecords.put(record.ID, record)
	s.updateBaby(record.BabyID, record.MeasurementPatch())

	record = record.Clone()
	return &record, nil
}

// DeleteGrowthRecord implements repository.GrowthRecordStore.
func (s *Store) DeleteGrowthRecord(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.growthRecords.remove(id), nil
}

// GetMilestone implements repository.MilestoneStore.
func (s *Store) GetMilestone(_ context.Context, id int64) (*models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	milestone, ok := s.milestones.get(id)
	if !ok {
		return nil, nil
	}
	milestone = milestone.Clone()
	return &milestone, nil
}

// ListMilestonesByBaby implements repository.MilestoneStore.
func (s *Store) ListMilestonesByBaby(_ context.Context, babyID int64) ([]models.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	milestones := s.milestones.filter(func(m models.Milestone) bool { return m.BabyID == babyID })
	for i := range milestones {
		milestones[i] = milestones[i].Clone()
	}
	return milestones, nil
}

// CreateMilestone implements repository.MilestoneStore.
func (s *Store) CreateMilestone(_ context.Context, in models.InsertMilestone) (*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.babies.get(in.BabyID); !ok {
		return nil, repository.ErrParentNotFound
	}

	milestone := s.insertMilestone(in)
	return &milestone, nil
}

// UpdateMilestone implements repository.MilestoneStore.
func (s *Store) UpdateMilestone(_ context.Context, id int64, patch models.MilestonePatch) (*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	milestone, ok := s.milestones.get(id)
	if !ok {
		return nil, nil
	}
	milestone = milestone.Clone()
	patch.Apply(&milestone)
	s.milestones.put(id, milestone)

	milestone = milestone.Clone()
	return &milestone, nil
}

func (s *Store) insertMilestone(in models.InsertMilestone) models.Milestone {
	milestone := models.NewMilestone(s.milestones.allocate(), in)
	s.milestones.put(milestone.ID, milestone)
	return milestone.Clone()
}

func cloneBabies(in []models.Baby) []models.Baby {
	for i := range in {
		in[i] = in[i].Clone()
	}
	return in
}
