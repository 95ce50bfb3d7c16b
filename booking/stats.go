package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const statsCacheSize = 512

// HostStats are the dashboard counters for one host.
type HostStats struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Postponed int64 `json:"postponed"`
	Upcoming  int64 `json:"upcoming"`
}

// StatsService serves per-host counters from an LRU cache. The lifecycle
// engine invalidates a host's entry after every committed transition, so a
// hit is never older than the host's last transition.
type StatsService struct {
	store MeetingStore
	cache *lru.Cache[uuid.UUID, HostStats]
	now   func() time.Time
}

func NewStatsService(store MeetingStore) *StatsService {
	cache, _ := lru.New[uuid.UUID, HostStats](statsCacheSize)
	return &StatsService{store: store, cache: cache, now: time.Now}
}

func (s *StatsService) HostStats(ctx context.Context, hostID uuid.UUID) (HostStats, error) {
	if stats, ok := s.cache.Get(hostID); ok {
		return stats, nil
	}

	counts, err := s.store.StatusCounts(ctx, hostID, DateOf(s.now()))
	if err != nil {
		return HostStats{}, err
	}
	stats := HostStats{
		Pending:   counts[StatePending],
		Approved:  counts[StateApproved],
		Postponed: counts[StatePostponed],
		Upcoming:  counts["upcoming"],
	}
	s.cache.Add(hostID, stats)
	return stats, nil
}

func (s *StatsService) Invalidate(hostID uuid.UUID) {
	s.cache.Remove(hostID)
}
