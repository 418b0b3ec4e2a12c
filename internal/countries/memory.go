package countries

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryCountryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Country
	bySlug map[string]uuid.UUID
}

// NewMemoryCountryRepository constructs an in-memory country repository.
func NewMemoryCountryRepository() CountryRepository {
	return &memoryCountryRepository{
		byID:   make(map[uuid.UUID]*Country),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryCountryRepository) GetByID(_ context.Context, id uuid.UUID) (*Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "country", Key: id.String()}
	}
	return cloneCountry(record), nil
}

func (m *memoryCountryRepository) GetBySlug(_ context.Context, slug string) (*Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "country", Key: slug}
	}
	return cloneCountry(m.byID[id]), nil
}

func (m *memoryCountryRepository) List(_ context.Context) ([]*Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Country, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneCountry(record))
	}
	slices.SortFunc(records, func(a, b *Country) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records, nil
}

func (m *memoryCountryRepository) Create(_ context.Context, record *Country) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneCountry(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneCountry(cloned), nil
}

type memoryCityRepository struct {
	mu        sync.RWMutex
	byCountry map[uuid.UUID][]*City
}

// NewMemoryCityRepository constructs an in-memory city repository.
func NewMemoryCityRepository() CityRepository {
	return &memoryCityRepository{byCountry: make(map[uuid.UUID][]*City)}
}

func (m *memoryCityRepository) ListMappable(_ context.Context, countryID uuid.UUID) ([]*City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*City, 0, len(m.byCountry[countryID]))
	for _, city := range m.byCountry[countryID] {
		if city.HasCoordinates() {
			records = append(records, cloneCity(city))
		}
	}
	slices.SortFunc(records, func(a, b *City) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records, nil
}

func (m *memoryCityRepository) Create(_ context.Context, record *City) (*City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneCity(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byCountry[cloned.CountryID] = append(m.byCountry[cloned.CountryID], cloned)
	return cloneCity(cloned), nil
}

type memorySheetRepository struct {
	mu     sync.RWMutex
	bySlug map[string]*CountrySheet
}

// NewMemorySheetRepository constructs an in-memory sheet repository.
func NewMemorySheetRepository() SheetRepository {
	return &memorySheetRepository{bySlug: make(map[string]*CountrySheet)}
}

func (m *memorySheetRepository) GetBySlug(_ context.Context, slug string) (*CountrySheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "country_sheet", Key: slug}
	}
	return cloneSheet(record), nil
}

func (m *memorySheetRepository) Create(_ context.Context, record *CountrySheet) (*CountrySheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSheet(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.bySlug[cloned.Slug] = cloned
	return cloneSheet(cloned), nil
}
