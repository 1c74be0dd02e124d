package segtremig

import (
	"time"

	rv "github.com/kentwait/randomvariate"
	"github.com/segmentio/ksuid"
)

// RunSyntheticBenchmark drives a single throwaway replicate whose sample
// size is jittered by a Poisson draw around base, the way the teacher's
// intrahost replication step uses rv.Poisson to size a batch of offspring.
// It exists to stress the arena growth path under varying nchrom, and logs
// its outcome through the same ResultLogger used by real replicates.
func RunSyntheticBenchmark(base *Params, lambda float64, rng RandSource, logger ResultLogger) (RunResult, error) {
	jitter := rv.Poisson(lambda)
	p := *base
	p.Nsam = base.Nsam + jitter
	p.Config = make([]int, len(base.Config))
	copy(p.Config, base.Config)
	p.Config[0] += jitter

	start := time.Now()
	sim, err := NewSimulator(&p, rng)
	if err != nil {
		return RunResult{}, err
	}
	result, err := sim.Run()
	if err != nil {
		return RunResult{}, err
	}

	segs := make([]SeglstEntry, result.NumSegs)
	for i, k := 0, 0; k < result.NumSegs; i, k = result.Seglst.Entry(i).Next, k+1 {
		segs[k] = *result.Seglst.Entry(i)
	}

	r := RunResult{
		RunID:    ksuid.New(),
		Segments: segs,
		NumSegs:  result.NumSegs,
		Elapsed:  time.Since(start),
	}
	if logger != nil {
		if err := logger.WriteRun(r); err != nil {
			return r, err
		}
		if err := logger.WriteSegments(r.RunID, r.Segments); err != nil {
			return r, err
		}
	}
	return r, nil
}
