package segtremig

import "math"

// eventKind identifies which competing stochastic event type won the
// minimum-of-exponentials race (spec.md section 4.D). The recombination
// class bundles crossover, left-end conversion, and internal conversion:
// which of the three actually fires is decided by a second draw once this
// class has already won (dispatchRecombinationClass).
type eventKind int

const (
	eventNone eventKind = iota
	eventRecomb
	eventMigration
	eventCoalescent
)

// rateCandidate is the outcome of one pass over the five competing rates:
// the winning kind (if any), its waiting time, and — for a coalescent
// win — which population it occurred in.
type rateCandidate struct {
	ok   bool
	kind eventKind
	tmin float64
	cpop int

	// recombination sub-rates, kept so dispatchRecombinationClass can
	// split the win into crossover/cleft/cin without recomputing.
	prec, clefta, prect float64
	mig                 float64
}

// nextStochasticEvent draws waiting times for every event type with
// positive rate and returns the minimum, following spec.md section 4.D.
// It also performs the early infinite-coalescent-time check that the
// reference simulator runs unconditionally each iteration: if more than
// one population still carries lineages and the total migration rate is
// zero with no demographic event pending, forward progress is impossible
// regardless of what the recombination/coalescent rates say, so the
// error fires even when those rates are positive.
func (sim *Simulator) nextStochasticEvent() (rateCandidate, error) {
	var cand rateCandidate

	prec := float64(sim.nlinks) * sim.r
	cin := float64(sim.nlinks) * sim.rf
	clefta := sim.cleft * sim.rft
	prect := prec + cin + clefta
	cand.prec, cand.clefta, cand.prect = prec, clefta, prect

	mig := 0.0
	for i := 0; i < sim.npop; i++ {
		mig += float64(sim.config[i]) * sim.migm[i][i]
	}
	cand.mig = mig

	if sim.npop > 1 && mig == 0.0 && sim.peekDemographicEvent() == nil {
		populated := 0
		for j := 0; j < sim.npop; j++ {
			if sim.config[j] > 0 {
				populated++
			}
		}
		if populated > 1 {
			return cand, errInfiniteCoalescentTime()
		}
	}

	if prect > 0.0 {
		u := drawNonZero(sim.rng)
		ttemp := -math.Log(u) / prect
		cand.ok, cand.kind, cand.tmin = true, eventRecomb, ttemp
	}

	if mig > 0.0 {
		u := drawNonZero(sim.rng)
		ttemp := -math.Log(u) / mig
		if !cand.ok || ttemp < cand.tmin {
			cand.ok, cand.kind, cand.tmin = true, eventMigration, ttemp
		}
	}

	for pop := 0; pop < sim.npop; pop++ {
		coalProb := float64(sim.config[pop]) * float64(sim.config[pop]-1)
		if coalProb <= 0.0 {
			continue
		}
		u := drawNonZero(sim.rng)
		var ttemp float64
		have := false
		if sim.alphag[pop] == 0 {
			ttemp = -math.Log(u) * sim.size[pop] / coalProb
			have = true
		} else {
			arg := 1.0 - sim.alphag[pop]*sim.size[pop]*math.Exp(-sim.alphag[pop]*(sim.time-sim.tlast[pop]))*math.Log(u)/coalProb
			if arg > 0.0 {
				ttemp = math.Log(arg) / sim.alphag[pop]
				have = true
			}
		}
		if have && (!cand.ok || ttemp < cand.tmin) {
			cand.ok, cand.kind, cand.tmin, cand.cpop = true, eventCoalescent, ttemp, pop
		}
	}

	return cand, nil
}
