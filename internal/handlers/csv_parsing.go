package handlers

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseSymbolList parses a comma separated symbol list such as
// `^GSPC, EURUSD=X,"BTC-USD"`. Blank entries are skipped; an empty input
// yields nil, which selects the whole catalog.
func ParseSymbolList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse symbols: %w", err)
	}
	if _, err := reader.Read(); err == nil {
		return nil, fmt.Errorf("symbols must be a single comma separated line")
	}

	var symbols []string
	for _, field := range record {
		if sym := strings.TrimSpace(field); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}
