package events

import "time"

// AnalysisStart is emitted before an operation of a document is analyzed.
type AnalysisStart struct {
	Document      string
	OperationName string
	OperationType string
}

// AnalysisFinish is emitted after an operation has been analyzed.
type AnalysisFinish struct {
	Document      string
	OperationName string
	OperationType string
	Selections    int
	CacheHits     int
	CacheMisses   int
	Err           error
	Duration      time.Duration
}

// SelectionResolved is emitted once per selection set resolution request.
// Cached is true when the result came from the session cache.
type SelectionResolved struct {
	Path     string
	TypeName string
	Abstract bool
	Variants int
	Cached   bool
	Err      error
	Start    time.Time
	Duration time.Duration
}
