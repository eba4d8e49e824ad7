package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/epeers/marketwatch/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed assets.yaml
var defaultAssets []byte

// LoadCatalog reads the asset catalog from path, or the built-in catalog when
// path is empty
func LoadCatalog(path string) (*models.Catalog, error) {
	data := defaultAssets
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML catalog. Every asset needs a symbol; the label
// defaults to the symbol.
func ParseCatalog(data []byte) (*models.Catalog, error) {
	catalog := &models.Catalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	count := 0
	for i := range catalog.Categories {
		cat := &catalog.Categories[i]
		for j := range cat.Assets {
			a := &cat.Assets[j]
			a.Symbol = strings.TrimSpace(a.Symbol)
			if a.Symbol == "" {
				return nil, fmt.Errorf("catalog category %q: asset %d has no symbol", cat.Name, j+1)
			}
			if a.Label == "" {
				a.Label = a.Symbol
			}
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("catalog has no assets")
	}
	return catalog, nil
}
