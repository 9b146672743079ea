package data

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/wayfinder/internal/model"
)

//go:embed floorplans/hospital.yaml
var hospitalYAML []byte

// Default возвращает встроенный план больницы (три этажа).
// Каждый вызов парсит заново, поэтому вызывающий может свободно мутировать результат.
func Default() (*model.MapData, error) {
	m, err := Parse(hospitalYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded floor plan: %w", err)
	}
	return m, nil
}

// LoadFile reads and validates a YAML floor plan from disk.
func LoadFile(path string) (*model.MapData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading floor plan %s: %w", path, err)
	}

	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("floor plan %s: %w", path, err)
	}

	slog.Info("loaded floor plan", "path", path, "floors", len(m.Floors), "pois", len(m.POIs()))
	return m, nil
}

// Parse decodes a YAML floor plan and validates it.
func Parse(raw []byte) (*model.MapData, error) {
	var m model.MapData
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return &m, nil
}
