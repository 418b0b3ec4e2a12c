package trips

import (
	"context"
	"fmt"
	"slices"
	"sync"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists trips. Row visibility per owner is enforced by the store.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*UserTrip, error)
	Create(ctx context.Context, trip *UserTrip) (*UserTrip, error)
}

// NewTripModelRepository creates the go-repository-bun repository for user trips.
func NewTripModelRepository(db *bun.DB) repository.Repository[*UserTrip] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*UserTrip]{
		NewRecord: func() *UserTrip { return &UserTrip{} },
		GetID: func(t *UserTrip) uuid.UUID {
			return t.ID
		},
		SetID: func(t *UserTrip, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *UserTrip) string {
			return t.ID.String()
		},
	})
}

// BunRepository implements Repository. Trips are per-user and change on
// every create, so no repository cache is layered on top.
type BunRepository struct {
	repo repository.Repository[*UserTrip]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewTripModelRepository(db)}
}

func (r *BunRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*UserTrip, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.user_id = ?", userID).
				OrderExpr("?TableAlias.created_at DESC")
		}),
		repository.SelectPaginate(0, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("user_trip repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) Create(ctx context.Context, trip *UserTrip) (*UserTrip, error) {
	created, err := r.repo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("user_trip repository error: %w", err)
	}
	return created, nil
}

type memoryRepository struct {
	mu    sync.RWMutex
	trips []*UserTrip
}

// NewMemoryRepository constructs an in-memory trip repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (m *memoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*UserTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*UserTrip, 0)
	for _, trip := range m.trips {
		if trip.UserID == userID {
			cloned := *trip
			out = append(out, &cloned)
		}
	}
	slices.SortStableFunc(out, func(a, b *UserTrip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *memoryRepository) Create(_ context.Context, trip *UserTrip) (*UserTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := *trip
	m.trips = append(m.trips, &cloned)
	out := cloned
	return &out, nil
}
