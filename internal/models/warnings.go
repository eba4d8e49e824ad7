package models

// WarningCode categorizes warnings by subsystem.
// W2xxx = pricing, W4xxx = portfolio simulation.
type WarningCode string

const (
	WarnMissingData    WarningCode = "W2001" // symbol produced zero usable points (excluded from weighting)
	WarnInvalidPrice   WarningCode = "W2002" // non-positive or non-numeric points dropped
	WarnFetchFailed    WarningCode = "W2003" // data source failed for the symbol
	WarnEmptyPortfolio WarningCode = "W4002" // no requested symbol had usable data
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Symbol  string      `json:"symbol,omitempty"`
	Message string      `json:"message"`
}
