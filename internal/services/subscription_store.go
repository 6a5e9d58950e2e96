package services

import (
	"os"
	"path/filepath"
	"sync"

	"dwd/internal/models"
	"dwd/internal/providers"
	"dwd/internal/structures"
	"dwd/internal/watch"
)

type SubscriptionStoreInterface interface {
	Upsert(phone string, vehicles []string, cancelHold bool)
	Remove(phone string)
	SetCancelHold(phone string, hold bool)
	List() []*models.SubscriptionRecord
	SubscribersForVehicle(vehicle string) []string
	EnsureToday()
	RotateTo(day string)
	Reset0900()
	Today() string
	Count() int
}

// SubscriptionStore owns the current day's phone→subscription map. Every
// read-modify-write and every snapshot read holds the one mutex, and every
// mutation persists the full snapshot synchronously before releasing it.
// Persistence failure is fail-soft: the in-memory state stays authoritative
// and the failure is only logged.
type SubscriptionStore struct {
	mu      sync.Mutex
	conf    *structures.Config
	clock   *watch.Clock
	fm      *watch.FileManager
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	today    string
	jsonPath string
	state    models.SubscriberFile
}

func NewSubscriptionStore(
	conf *structures.Config,
	clock *watch.Clock,
	fm *watch.FileManager,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) SubscriptionStoreInterface {
	s := &SubscriptionStore{
		conf:    conf,
		clock:   clock,
		fm:      fm,
		logger:  logger,
		metrics: metrics,
	}

	if err := os.MkdirAll(conf.Subscriptions.DataDir, 0755); err != nil {
		logger.Warnf(providers.TypeApp, "create data dir: %s", err)
	}

	s.today = clock.TodayCompact()
	s.jsonPath = s.dataPath(s.today)

	state, err := fm.LoadFromFile(s.jsonPath)
	if err != nil {
		logger.Warnf(providers.TypeApp, "load %s: %s, starting empty", s.jsonPath, err)
	}
	s.state = state
	s.persistLocked()
	s.metrics.SetSubscribers(len(s.state))

	return s
}

func (s *SubscriptionStore) Upsert(phone string, vehicles []string, cancelHold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[phone] = &models.SubscriptionRecord{
		Phone:      phone,
		Vehicles:   append([]string(nil), vehicles...),
		CancelHold: cancelHold,
		CreatedAt:  s.clock.NowISO(),
	}
	s.persistLocked()
	s.metrics.SetSubscribers(len(s.state))
}

func (s *SubscriptionStore) Remove(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state[phone]; !ok {
		return
	}
	delete(s.state, phone)
	s.persistLocked()
	s.metrics.SetSubscribers(len(s.state))
}

func (s *SubscriptionStore) SetCancelHold(phone string, hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.state[phone]
	if !ok {
		return
	}
	rec.CancelHold = hold
	s.persistLocked()
}

// List returns deep copies; callers never see the store's mutable records.
func (s *SubscriptionStore) List() []*models.SubscriptionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.SubscriptionRecord, 0, len(s.state))
	for _, rec := range s.state {
		out = append(out, rec.Clone())
	}
	return out
}

// SubscribersForVehicle resolves the phones to notify right now: subscribed
// to vehicle and not holding. Order is unspecified.
func (s *SubscriptionStore) SubscribersForVehicle(vehicle string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, rec := range s.state {
		if rec.HasVehicle(vehicle) && !rec.CancelHold {
			out = append(out, rec.Phone)
		}
	}
	return out
}

func (s *SubscriptionStore) EnsureToday() {
	t := s.clock.TodayCompact()

	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.today {
		s.rotateToLocked(t)
	}
}

func (s *SubscriptionStore) RotateTo(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotateToLocked(day)
}

// Reset0900 rotates unconditionally, even when already on today's key. Both
// the scheduled daily reset and the manual forced reset come through here.
func (s *SubscriptionStore) Reset0900() {
	s.RotateTo(s.clock.TodayCompact())
}

func (s *SubscriptionStore) Today() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

func (s *SubscriptionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state)
}

// rotateToLocked archives the old snapshot, then resets no matter what the
// archive attempt did. Rotation must succeed even when archiving cannot.
func (s *SubscriptionStore) rotateToLocked(day string) {
	if _, err := os.Stat(s.jsonPath); err == nil {
		if err := s.fm.Archive(s.jsonPath, s.conf.Subscriptions.ArchiveDir); err != nil {
			s.logger.Warnf(providers.TypeApp, "archive %s: %s", s.jsonPath, err)
		}
	}

	s.today = day
	s.jsonPath = s.dataPath(day)
	s.state = models.SubscriberFile{}
	s.persistLocked()
	s.metrics.SetSubscribers(0)
}

func (s *SubscriptionStore) persistLocked() {
	if err := s.fm.SaveToFile(s.jsonPath, s.state); err != nil {
		s.logger.Warnf(providers.TypeApp, "persist %s: %s (in-memory state kept)", s.jsonPath, err)
	}
}

func (s *SubscriptionStore) dataPath(day string) string {
	return filepath.Join(s.conf.Subscriptions.DataDir, "subscribers_"+day+".json")
}
