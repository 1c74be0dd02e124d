package segtremig

import "testing"

func TestRunSyntheticBenchmark_JittersSampleSize(t *testing.T) {
	base := &Params{
		Nsam: 2, Npop: 1, Nsites: 2,
		Config:   []int{2},
		MigMat:   [][]float64{{0}},
		R:        0,
		F:        0,
		TrackLen: 1,
		Size:     []float64{1},
		Alphag:   []float64{0},
	}
	logger := &recordingLogger{}
	result, err := RunSyntheticBenchmark(base, 0, NewMathRandSource(1), logger)
	if err != nil {
		t.Fatal(err)
	}
	// lambda=0 means Poisson always draws 0, so the benchmark should
	// behave exactly like a plain two-sample run.
	if result.NumSegs != 1 {
		t.Errorf("got NumSegs %d, want 1", result.NumSegs)
	}
	if len(logger.runs) != 1 {
		t.Errorf("expected the benchmark result to be logged, got %d calls", len(logger.runs))
	}
}

func TestRunSyntheticBenchmark_NilLoggerIsOptional(t *testing.T) {
	base := &Params{
		Nsam: 2, Npop: 1, Nsites: 2,
		Config:   []int{2},
		MigMat:   [][]float64{{0}},
		R:        0,
		F:        0,
		TrackLen: 1,
		Size:     []float64{1},
		Alphag:   []float64{0},
	}
	if _, err := RunSyntheticBenchmark(base, 0, NewMathRandSource(1), nil); err != nil {
		t.Fatal(err)
	}
}
