package segtremig

import (
	"math"
)

// Simulator is the backwards-in-time coalescent core (segtre_mig in the
// reference implementation). A Simulator is single-use and single-
// threaded: Run consumes it and must not be called twice, and a
// *Simulator must never be shared across goroutines (spec.md section 5).
type Simulator struct {
	nsam   int
	npop   int
	nsites int

	config []int
	migm   [][]float64

	r, f, trackLen float64
	rf, rft        float64
	pc, lnpc       float64

	size   []float64
	alphag []float64
	tlast  []float64

	arena  *ChromosomeArena
	seglst *Seglst

	nlinks int
	cleft  float64
	time   float64

	devents []DemographicEvent
	devIdx  int

	rng RandSource
}

// NewSimulator builds a ready-to-run Simulator from validated parameters.
// It mirrors the initialization block of segtre_mig: one chromosome per
// sampled gamete (grouped by population), a single seglst region spanning
// the whole chromosome, and the derived recombination/gene-conversion
// constants pc, lnpc, rf, rft.
func NewSimulator(p *Params, rng RandSource) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sim := &Simulator{
		nsam:     p.Nsam,
		npop:     p.Npop,
		nsites:   p.Nsites,
		r:        p.R,
		f:        p.F,
		trackLen: p.TrackLen,
		devents:  p.Devents,
		rng:      rng,
	}
	sim.config = append([]int(nil), p.Config...)
	sim.migm = make([][]float64, p.Npop)
	for i := range p.MigMat {
		sim.migm[i] = append([]float64(nil), p.MigMat[i]...)
	}
	sim.size = append([]float64(nil), p.Size...)
	sim.alphag = append([]float64(nil), p.Alphag...)
	sim.tlast = make([]float64, p.Npop)

	sim.arena = NewChromosomeArena(p.Nsam, p.ChromCeiling)
	sim.seglst = NewSeglst(p.Nsam, p.SeglstCeiling)

	ind := 0
	for pop := 0; pop < p.Npop; pop++ {
		for j := 0; j < p.Config[pop]; j++ {
			_, err := sim.arena.Append(pop, []Segment{{Beg: 0, End: p.Nsites - 1, Desc: ind}})
			if err != nil {
				return nil, err
			}
			ind++
		}
	}

	sim.nlinks = sim.nsam * (p.Nsites - 1)
	sim.time = 0
	sim.r = sim.r / float64(p.Nsites-1)
	if sim.f > 0 {
		sim.pc = (sim.trackLen - 1.0) / sim.trackLen
	} else {
		sim.pc = 1.0
	}
	sim.lnpc = math.Log(sim.pc)
	sim.cleft = float64(sim.nsam) * (1.0 - math.Pow(sim.pc, float64(p.Nsites-1)))
	if sim.r > 0 {
		sim.rf = sim.r * sim.f
	} else {
		sim.rf = sim.f / float64(p.Nsites-1)
	}
	sim.rft = sim.rf * sim.trackLen

	return sim, nil
}

// Result is the output of a completed simulation: the final region list
// and its length, consumed by a downstream mutation/printing collaborator
// (spec.md section 6.2).
type Result struct {
	Seglst  *Seglst
	NumSegs int
}

// Run executes the driver loop (spec.md section 4.G) while more than one
// chromosome remains, dispatching whichever of the stochastic or
// demographic event queues fires first. A final merge that leaves no
// ancestral material removes both chromosomes, so the loop can end with
// none left.
func (sim *Simulator) Run() (*Result, error) {
	for sim.arena.NumChrom() > 1 {
		if err := sim.step(); err != nil {
			return nil, err
		}
	}
	return &Result{Seglst: sim.seglst, NumSegs: sim.seglst.NumSegs()}, nil
}

// step advances the simulation by exactly one event, either a stochastic
// draw or the next scheduled demographic event, whichever comes first.
func (sim *Simulator) step() error {
	cand, err := sim.nextStochasticEvent()
	if err != nil {
		return err
	}

	nextDev := sim.peekDemographicEvent()

	if nextDev == nil && !cand.ok {
		return errInfiniteCoalescentTime()
	}

	if (nextDev != nil) && (!cand.ok || sim.time+cand.tmin >= nextDev.Time) {
		return sim.applyDemographicEvent(nextDev)
	}

	sim.time += cand.tmin
	switch cand.kind {
	case eventRecomb:
		return sim.dispatchRecombinationClass(cand)
	case eventMigration:
		return sim.dispatchMigration(cand)
	case eventCoalescent:
		return sim.dispatchCoalescent(cand.cpop)
	}
	return nil
}
