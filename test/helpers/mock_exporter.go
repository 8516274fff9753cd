package helpers

import (
	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

// MockExporter captures the last exported workbook
type MockExporter struct {
	Path     string
	Workbook *common.Workbook
	Err      error
}

// NewMockExporter creates a new mock exporter
func NewMockExporter() *MockExporter {
	return &MockExporter{}
}

// Export records the workbook
func (m *MockExporter) Export(path string, wb *common.Workbook) error {
	if m.Err != nil {
		return m.Err
	}
	m.Path = path
	m.Workbook = wb
	return nil
}

var _ common.WorkbookExporter = (*MockExporter)(nil)
