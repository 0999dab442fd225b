package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ImportSchema is the top-level structure of a roadmap import file. The
// export command writes the same structure.
type ImportSchema struct {
	Statuses []StatusImport `json:"statuses,omitempty"`
	Items    []ItemImport   `json:"items"`
	Markers  []MarkerImport `json:"markers,omitempty"`
}

type StatusImport struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ItemImport is one item. Status may name a status by id or by name,
// either from this file or one already stored.
type ItemImport struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	StartAt string  `json:"start_at"`
	EndAt   *string `json:"end_at,omitempty"`
	Status  string  `json:"status"`
	Group   string  `json:"group,omitempty"`
}

type MarkerImport struct {
	ID              string `json:"id,omitempty"`
	Date            string `json:"date"`
	Label           string `json:"label"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
}

// LoadImportSchema reads an import file. Comments and trailing commas
// are allowed.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	var schema ImportSchema
	if err := json.Unmarshal(std, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
