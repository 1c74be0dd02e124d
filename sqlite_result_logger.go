package segtremig

import (
	"database/sql"
	"fmt"
	"strings"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/ksuid"
)

// SQLiteResultLogger is a ResultLogger that writes replicate summaries and
// surviving regions into a SQLite database, mirroring the teacher's
// SQLiteLogger CREATE-TABLE-then-prepared-INSERT pattern.
type SQLiteResultLogger struct {
	path       string
	instanceID int
}

// NewSQLiteResultLogger creates a new logger that writes to a SQLite
// database.
func NewSQLiteResultLogger(basepath string, i int) *SQLiteResultLogger {
	l := new(SQLiteResultLogger)
	l.SetBasePath(basepath, i)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *SQLiteResultLogger) SetBasePath(basepath string, i int) {
	l.path = strings.TrimSuffix(basepath, ".") + ".db"
	l.instanceID = i
}

func (l *SQLiteResultLogger) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal=WAL&_locking=EXCLUSIVE&_sync=NORMAL", l.path)
	return sql.Open("sqlite3", dsn)
}

// Init creates the Run and Segment tables for this instance.
func (l *SQLiteResultLogger) Init() error {
	db, err := l.open()
	if err != nil {
		return err
	}
	defer db.Close()

	runTable := fmt.Sprintf("Run%03d", l.instanceID)
	segTable := fmt.Sprintf("Segment%03d", l.instanceID)

	stmts := []string{
		fmt.Sprintf("create table if not exists %s (id integer not null primary key, runID text, numSegs int, elapsedMs int)", runTable),
		fmt.Sprintf("create table if not exists %s (id integer not null primary key, runID text, segIndex int, beg int, numNodes int)", segTable),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%q: %s", err, stmt)
		}
	}
	return nil
}

// WriteRun records one completed replicate's summary row.
func (l *SQLiteResultLogger) WriteRun(r RunResult) error {
	db, err := l.open()
	if err != nil {
		return err
	}
	defer db.Close()

	table := fmt.Sprintf("Run%03d", l.instanceID)
	_, err = db.Exec(
		fmt.Sprintf("insert into %s(runID, numSegs, elapsedMs) values(?, ?, ?)", table),
		r.RunID.String(), r.NumSegs, r.Elapsed.Milliseconds(),
	)
	return err
}

// WriteSegments records one row per surviving ancestral region.
func (l *SQLiteResultLogger) WriteSegments(runID ksuid.KSUID, segs []SeglstEntry) error {
	db, err := l.open()
	if err != nil {
		return err
	}
	defer db.Close()

	table := fmt.Sprintf("Segment%03d", l.instanceID)
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(fmt.Sprintf("insert into %s(runID, segIndex, beg, numNodes) values(?, ?, ?, ?)", table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, seg := range segs {
		if _, err := stmt.Exec(runID.String(), i, seg.Beg, seg.NNodes); err != nil {
			return err
		}
	}
	return tx.Commit()
}
