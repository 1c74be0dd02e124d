package segtremig

import (
	"sync"
	"time"

	"github.com/segmentio/ksuid"
)

// RunReplicates runs n independent replicates of conf over a worker pool,
// in the spirit of the teacher's si_simulator.go goroutine/sync.WaitGroup
// fan-out: each worker owns its own Simulator and RandSource (spec.md
// section 5 forbids sharing either across goroutines), and results are
// collected back onto the caller's goroutine before being handed to
// logger one at a time.
func RunReplicates(conf *Params, n int, workers int, seed int64, logger ResultLogger) ([]RunResult, error) {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	resultsCh := make(chan RunResult, n)
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			rng := NewMathRandSource(workerSeed)
			for range jobs {
				start := time.Now()
				sim, err := NewSimulator(conf, rng)
				if err != nil {
					errCh <- err
					continue
				}
				result, err := sim.Run()
				if err != nil {
					errCh <- err
					continue
				}
				segs := make([]SeglstEntry, result.NumSegs)
				for seg, k := 0, 0; k < result.NumSegs; seg, k = result.Seglst.Entry(seg).Next, k+1 {
					segs[k] = *result.Seglst.Entry(seg)
				}
				resultsCh <- RunResult{
					RunID:    ksuid.New(),
					Segments: segs,
					NumSegs:  result.NumSegs,
					Elapsed:  time.Since(start),
				}
			}
		}(seed + int64(w))
	}

	go func() {
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
		close(errCh)
	}()

	var results []RunResult
	for r := range resultsCh {
		if logger != nil {
			if err := logger.WriteRun(r); err != nil {
				return results, err
			}
			if err := logger.WriteSegments(r.RunID, r.Segments); err != nil {
				return results, err
			}
		}
		results = append(results, r)
	}
	for err := range errCh {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
