package helpers

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
)

// MockDefinitionLoader serves design sheets from memory, keyed by path
type MockDefinitionLoader struct {
	mu     sync.RWMutex
	sheets map[string]func() loadout.Definition
	errors map[string]error
}

// NewMockDefinitionLoader creates an empty loader
func NewMockDefinitionLoader() *MockDefinitionLoader {
	return &MockDefinitionLoader{
		sheets: make(map[string]func() loadout.Definition),
		errors: make(map[string]error),
	}
}

// SetSheet makes path load the given definition. Every load returns the
// same instance.
func (m *MockDefinitionLoader) SetSheet(path string, def loadout.Definition) {
	m.SetSheetFunc(path, func() loadout.Definition { return def })
}

// SetSheetFunc makes every load of path build a fresh definition, the way
// parsing a file does
func (m *MockDefinitionLoader) SetSheetFunc(path string, build func() loadout.Definition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[path] = build
	delete(m.errors, path)
}

// SetError makes loading path fail
func (m *MockDefinitionLoader) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path] = err
}

// Load returns the definition registered for path
func (m *MockDefinitionLoader) Load(path string) (loadout.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.errors[path]; ok {
		return nil, err
	}
	build, ok := m.sheets[path]
	if !ok {
		return nil, fmt.Errorf("reading %s: no such file", path)
	}
	return build(), nil
}

var _ common.DefinitionLoader = (*MockDefinitionLoader)(nil)
