package domain

// Resolution says which stage produced the intent for a query.
type Resolution string

const (
	ResolutionRule     Resolution = "rule"
	ResolutionSemantic Resolution = "semantic"
	ResolutionNone     Resolution = "none"
)

// QueryRecord is one processed query, as written to the query log.
type QueryRecord struct {
	Query       string
	Intent      string // empty when unresolved
	Resolution  Resolution
	Resolved    bool // true when a non-nil result was produced
	DurationMs  int64
	TimestampMs int64
}
