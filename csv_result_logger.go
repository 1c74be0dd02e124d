package segtremig

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/ksuid"
)

// CSVResultLogger is a ResultLogger that writes replicate summaries and
// surviving regions as comma-delimited files, in the style of the
// teacher's CSVLogger.
type CSVResultLogger struct {
	runPath      string
	segmentsPath string
}

// NewCSVResultLogger creates a new logger that writes data into CSV files.
func NewCSVResultLogger(basepath string, i int) *CSVResultLogger {
	l := new(CSVResultLogger)
	l.SetBasePath(basepath, i)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *CSVResultLogger) SetBasePath(basepath string, i int) {
	trimmed := strings.TrimSuffix(basepath, ".")
	l.runPath = trimmed + fmt.Sprintf(".%03d.run.csv", i)
	l.segmentsPath = trimmed + fmt.Sprintf(".%03d.segments.csv", i)
}

// Init creates the CSV files and writes header rows.
func (l *CSVResultLogger) Init() error {
	if err := newFile(l.runPath, "runID,numSegs,elapsedMs\n"); err != nil {
		return err
	}
	return newFile(l.segmentsPath, "runID,segIndex,beg,numNodes\n")
}

// WriteRun records one completed replicate's summary row.
func (l *CSVResultLogger) WriteRun(r RunResult) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s,%d,%d\n", r.RunID.String(), r.NumSegs, r.Elapsed.Milliseconds())
	return appendToFile(l.runPath, b.Bytes())
}

// WriteSegments records one row per surviving ancestral region.
func (l *CSVResultLogger) WriteSegments(runID ksuid.KSUID, segs []SeglstEntry) error {
	var b bytes.Buffer
	for i, seg := range segs {
		fmt.Fprintf(&b, "%s,%d,%d,%d\n", runID.String(), i, seg.Beg, seg.NNodes)
	}
	return appendToFile(l.segmentsPath, b.Bytes())
}

// newFile creates a new file at path and writes header, failing if the
// file already exists.
func newFile(path, header string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(header); err != nil {
		return err
	}
	return f.Sync()
}

// appendToFile creates path if it does not exist, or appends to it.
func appendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
