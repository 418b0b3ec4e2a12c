package subscriptions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryProfileSource keeps profiles and institutions in process.
type MemoryProfileSource struct {
	mu           sync.RWMutex
	profiles     map[uuid.UUID]Profile
	institutions map[uuid.UUID]InstitutionRecord
}

func NewMemoryProfileSource() *MemoryProfileSource {
	return &MemoryProfileSource{
		profiles:     make(map[uuid.UUID]Profile),
		institutions: make(map[uuid.UUID]InstitutionRecord),
	}
}

// PutProfile stores or replaces a profile.
func (m *MemoryProfileSource) PutProfile(profile Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

// PutInstitution stores or replaces an institution.
func (m *MemoryProfileSource) PutInstitution(inst InstitutionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.institutions[inst.ID] = inst
}

func (m *MemoryProfileSource) GetProfile(_ context.Context, userID uuid.UUID) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *MemoryProfileSource) GetInstitution(_ context.Context, id uuid.UUID) (*InstitutionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.institutions[id]
	if !ok {
		return nil, nil
	}
	return &inst, nil
}
