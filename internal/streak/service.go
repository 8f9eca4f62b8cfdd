package streak

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/logger"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/storage"
	"github.com/julianstephens/backtrack/internal/utils"
)

// ErrStateNotFound is returned by Load when no usable aggregate exists in
// storage. Sync treats it as the signal to start fresh.
var ErrStateNotFound = errors.New("gamification state not found")

// Service wires the pure streak functions to a storage provider and a clock.
type Service struct {
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{
		store: store,
		loc:   time.Local,
		now:   time.Now,
	}
}

// UseTimezone points the service clock at the given IANA timezone. Unknown
// names keep the current location.
func (s *Service) UseTimezone(timezone string) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		logger.Warn("Unknown timezone, keeping current location", "timezone", timezone)
		return
	}
	s.loc = loc
}

// Now returns the current time in the service's location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Load reads the stored aggregate. Both a missing record and an unreadable
// one come back as ErrStateNotFound so callers fall back to a fresh state
// instead of failing hard. The monthly freeze quota is refreshed on every
// successful load.
func (s *Service) Load() (models.GamificationState, error) {
	raw, err := s.store.GetValue(constants.StateKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return models.GamificationState{}, ErrStateNotFound
		}
		return models.GamificationState{}, fmt.Errorf("failed to load gamification state: %w", err)
	}

	var state models.GamificationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.Warn("Stored gamification state is corrupt, starting fresh", "error", err)
		return models.GamificationState{}, ErrStateNotFound
	}

	refreshFreeze(&state, s.Now())
	return state, nil
}

// refreshFreeze grants the freeze back once the calendar month of its last
// use has passed. A consumed flag with no recorded use heals to available.
func refreshFreeze(state *models.GamificationState, now time.Time) {
	if state.Streak.FreezeUsedAt == nil {
		state.Streak.FreezeAvailable = true
		return
	}
	if !utils.SameMonth(*state.Streak.FreezeUsedAt, now) {
		state.Streak.FreezeAvailable = true
		state.Streak.FreezeUsedAt = nil
	}
}

// Save stamps the aggregate with the current time and writes it back.
func (s *Service) Save(state *models.GamificationState) error {
	state.LastUpdated = s.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize gamification state: %w", err)
	}
	if err := s.store.SetValue(constants.StateKey, string(data)); err != nil {
		return fmt.Errorf("failed to save gamification state: %w", err)
	}
	return nil
}

// Sync loads the aggregate, creating a fresh one when none exists, settles
// any elapsed weeks, and persists the result when anything changed. Commands
// call it before reading or mutating streak state so the week on disk is
// always the week containing now.
func (s *Service) Sync() (models.GamificationState, error) {
	now := s.Now()

	state, err := s.Load()
	dirty := false
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			return models.GamificationState{}, err
		}
		state = NewState(constants.DefaultGoalDays, now)
		dirty = true
	}

	before := state.CurrentWeek.WeekStart
	state = ProcessWeekTransition(state, now)
	if state.CurrentWeek.WeekStart != before {
		dirty = true
	}

	if dirty {
		if err := s.Save(&state); err != nil {
			return models.GamificationState{}, err
		}
	}
	return state, nil
}
