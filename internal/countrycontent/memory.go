package countrycontent

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*CountryContent
}

// NewMemoryRepository constructs an in-memory content repository. Rows are
// returned in insertion order; the service applies the section ordering.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*CountryContent)}
}

func (m *memoryRepository) ListByCountry(_ context.Context, countryID uuid.UUID) ([]*CountryContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*CountryContent, 0)
	for _, record := range m.byID {
		if record.CountryID == countryID {
			cloned := *record
			records = append(records, &cloned)
		}
	}
	return records, nil
}

func (m *memoryRepository) GetSection(_ context.Context, countryID uuid.UUID, section Section) (*CountryContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.CountryID == countryID && record.Section == section {
			cloned := *record
			return &cloned, nil
		}
	}
	return nil, &NotFoundError{Resource: "country_content", Key: countryID.String() + ":" + string(section)}
}

func (m *memoryRepository) Upsert(_ context.Context, record *CountryContent) (*CountryContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := *record
	if existing, ok := m.byID[cloned.ID]; ok {
		cloned.CreatedAt = existing.CreatedAt
	}
	m.byID[cloned.ID] = &cloned
	out := cloned
	return &out, nil
}
