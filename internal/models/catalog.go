package models

import "strings"

// CatalogAsset is a display label bound to a data source ticker
type CatalogAsset struct {
	Label  string `yaml:"label" json:"label"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// Category groups catalog assets for display (e.g. "Equities - US")
type Category struct {
	Name   string         `yaml:"name" json:"name"`
	Assets []CatalogAsset `yaml:"assets" json:"assets"`
}

// Catalog is the list of assets the dashboard offers
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Symbols returns every catalog symbol once, in catalog order.
func (c *Catalog) Symbols() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cat := range c.Categories {
		for _, a := range cat.Assets {
			sym := strings.ToUpper(a.Symbol)
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
	}
	return out
}

// Label returns the display label for symbol, or "" when it is not listed.
func (c *Catalog) Label(symbol string) string {
	for _, cat := range c.Categories {
		for _, a := range cat.Assets {
			if strings.EqualFold(a.Symbol, symbol) {
				return a.Label
			}
		}
	}
	return ""
}
