// Package premium holds the open/close state of the premium upsell modal.
package premium

import (
	"strings"
	"sync"
)

// DefaultFeatureName labels the modal until a feature name is supplied.
const DefaultFeatureName = "this feature"

// ModalState is a point-in-time view of a Modal.
type ModalState struct {
	Open        bool
	FeatureName string
}

// Modal is safe for concurrent use. The zero value is ready and closed.
type Modal struct {
	mu          sync.Mutex
	open        bool
	featureName string
}

func NewModal() *Modal {
	return &Modal{featureName: DefaultFeatureName}
}

// Open shows the modal. A non-empty name replaces the label; otherwise the
// previous label is kept.
func (m *Modal) Open(name ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(name) > 0 {
		if trimmed := strings.TrimSpace(name[0]); trimmed != "" {
			m.featureName = trimmed
		}
	}
	m.open = true
}

// Close hides the modal and keeps the label.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	label := m.featureName
	if label == "" {
		label = DefaultFeatureName
	}
	return ModalState{Open: m.open, FeatureName: label}
}
