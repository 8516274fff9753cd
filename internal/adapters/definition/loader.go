package definition

import (
	"fmt"
	"os"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
)

// TOMLLoader reads design sheets from disk
type TOMLLoader struct{}

// NewTOMLLoader creates a new design sheet loader
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{}
}

// Load reads and decodes the sheet at path
func (l *TOMLLoader) Load(path string) (loadout.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sheet, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// Save encodes a definition and writes it to path
func (l *TOMLLoader) Save(path string, def loadout.Definition) error {
	data, err := Encode(def)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
