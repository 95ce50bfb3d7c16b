package booking

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFilter is the caller-facing filter contract. DateStatus is computed
// from the scheduled date relative to now at query time, never stored.
type ListFilter struct {
	Status     string
	DateStatus string
	Archived   bool
	Page       int
	PageSize   int
}

type Page struct {
	Items      []any `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListingGateway serves each party's paginated view of its own meetings.
// Results are always ordered ascending by (scheduled_date, start_time) so
// the nearest meeting is first; that ordering is a user-facing contract.
type ListingGateway struct {
	store MeetingStore
	now   func() time.Time
}

func NewListingGateway(store MeetingStore) *ListingGateway {
	return &ListingGateway{store: store, now: time.Now}
}

func (g *ListingGateway) List(ctx context.Context, actor Actor, filter ListFilter) (*Page, error) {
	switch filter.Status {
	case "", StatePending, StateApproved, StatePostponed:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}
	switch filter.DateStatus {
	case "", DateStatusUpcoming, DateStatusPast:
	default:
		return nil, fmt.Errorf("%w: unknown date status %q", ErrValidation, filter.DateStatus)
	}
	if actor.Role != RoleHost && actor.Role != RoleRequester {
		return nil, ErrUnauthorized
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	meetings, total, err := g.store.List(ctx, ListQuery{
		ActorID:    actor.ID,
		Role:       actor.Role,
		Status:     filter.Status,
		DateStatus: filter.DateStatus,
		Archived:   filter.Archived,
		Today:      DateOf(g.now()),
		Offset:     (page - 1) * size,
		Limit:      size,
	})
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(meetings))
	for i := range meetings {
		items = append(items, ProjectFor(actor, &meetings[i]))
	}
	return &Page{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}, nil
}
