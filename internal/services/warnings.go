package services

import (
	"context"
	"sync"

	"github.com/epeers/marketwatch/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during one dashboard refresh.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the caller can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// GetWarnings returns a copy of all collected warnings, never nil.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}

// CountByCode returns how many warnings of each code were collected
func (wc *WarningCollector) CountByCode() map[models.WarningCode]int {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	counts := make(map[models.WarningCode]int)
	for _, w := range wc.warnings {
		counts[w.Code]++
	}
	return counts
}
