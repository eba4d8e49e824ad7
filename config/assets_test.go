package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/epeers/marketwatch/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Default(t *testing.T) {
	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)

	require.Len(t, catalog.Categories, 6)
	assert.Equal(t, "Equities - US", catalog.Categories[0].Name)

	symbols := catalog.Symbols()
	assert.Len(t, symbols, 20)
	assert.Contains(t, symbols, "^GSPC")
	assert.Contains(t, symbols, "EURUSD=X")
	assert.Contains(t, symbols, "TMBMKDE-10Y")
	assert.Equal(t, "S&P 500", catalog.Label("^gspc"))
	assert.Equal(t, "", catalog.Label("NOPE"))
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	content := `categories:
  - name: Mine
    assets:
      - {label: "Apple", symbol: "aapl"}
      - {symbol: "MSFT"}
      - {label: "Apple again", symbol: "AAPL"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	catalog, err := config.LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, catalog.Symbols())
	assert.Equal(t, "MSFT", catalog.Label("MSFT"), "label defaults to the symbol")
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := config.ParseCatalog([]byte("categories: []"))
	assert.Error(t, err, "empty catalog")

	_, err = config.ParseCatalog([]byte("categories:\n  - name: X\n    assets:\n      - {label: \"No symbol\"}\n"))
	assert.Error(t, err, "asset without symbol")

	_, err = config.ParseCatalog([]byte("categories: [\n"))
	assert.Error(t, err, "malformed yaml")

	_, err = config.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
