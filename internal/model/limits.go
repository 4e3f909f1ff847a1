package model

// Collection and history caps. These are product constants, not tunables.
const (
	// ComparisonLimit is the maximum number of lawyers a user can hold
	// in their comparison set at any time.
	ComparisonLimit = 3

	// HistoryReadLimit caps how many search history records a single
	// listing returns.
	HistoryReadLimit = 50
)
