package segtremig

import (
	"time"

	"github.com/segmentio/ksuid"
)

// RunResult is what a single replicate hands to a ResultLogger: the run's
// identity, its final region list, and how long it took.
type RunResult struct {
	RunID    ksuid.KSUID
	Segments []SeglstEntry
	NumSegs  int
	Elapsed  time.Duration
}

// ResultLogger is the general definition of a logger that records
// completed replicates to file or to a database, mirroring the teacher's
// DataLogger interface.
type ResultLogger interface {
	// SetBasePath sets the base path of the logger.
	SetBasePath(path string, i int)
	// Init initializes the logger, creating a file or table as needed.
	Init() error
	// WriteRun records one completed replicate's summary row.
	WriteRun(r RunResult) error
	// WriteSegments records one row per surviving ancestral region.
	WriteSegments(runID ksuid.KSUID, segs []SeglstEntry) error
}
