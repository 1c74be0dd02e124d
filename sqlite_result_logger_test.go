package segtremig

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
)

func TestSQLiteResultLogger_InitAndWrite(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	logger := NewSQLiteResultLogger(base, 2)

	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	runID := ksuid.New()
	if err := logger.WriteRun(RunResult{RunID: runID, NumSegs: 4}); err != nil {
		t.Fatal(err)
	}
	segs := []SeglstEntry{{Beg: 0, NNodes: 1}, {Beg: 5, NNodes: 2}}
	if err := logger.WriteSegments(runID, segs); err != nil {
		t.Fatal(err)
	}

	db, err := logger.open()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("select count(*) from Run002").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d rows in Run002, want 1", count)
	}

	var segCount int
	if err := db.QueryRow("select count(*) from Segment002").Scan(&segCount); err != nil {
		t.Fatal(err)
	}
	if segCount != 2 {
		t.Errorf("got %d rows in Segment002, want 2", segCount)
	}
}

func TestSQLiteResultLogger_SetBasePath_AppendsDBSuffix(t *testing.T) {
	logger := NewSQLiteResultLogger("/tmp/out.", 7)
	if logger.path != "/tmp/out.db" {
		t.Errorf("got path %q, want %q", logger.path, "/tmp/out.db")
	}
	if logger.instanceID != 7 {
		t.Errorf("got instanceID %d, want 7", logger.instanceID)
	}
}
