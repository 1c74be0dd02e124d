package segtremig

import (
	"math"

	"github.com/pkg/errors"
)

// peekDemographicEvent returns the next unprocessed demographic event, or
// nil if the schedule is exhausted. It plays the role of the nextevent
// pointer into the reference implementation's singly-linked devent list;
// here the list is a slice with a cursor, the idiomatic Go rendering
// spec.md section 9 anticipates.
func (sim *Simulator) peekDemographicEvent() *DemographicEvent {
	if sim.devIdx >= len(sim.devents) {
		return nil
	}
	return &sim.devents[sim.devIdx]
}

// applyDemographicEvent advances time to ev.Time and mutates population
// sizes, growth rates, the migration matrix, or topology according to
// spec.md section 4.F's action table, then advances the schedule cursor.
func (sim *Simulator) applyDemographicEvent(ev *DemographicEvent) error {
	sim.time = ev.Time
	defer func() { sim.devIdx++ }()

	switch ev.Type {
	case 'N':
		for pop := 0; pop < sim.npop; pop++ {
			sim.size[pop] = ev.Paramv
			sim.alphag[pop] = 0.0
		}
	case 'n':
		sim.size[ev.PopI] = ev.Paramv
		sim.alphag[ev.PopI] = 0.0
	case 'G':
		for pop := 0; pop < sim.npop; pop++ {
			sim.size[pop] = sim.size[pop] * math.Exp(-sim.alphag[pop]*(sim.time-sim.tlast[pop]))
			sim.alphag[pop] = ev.Paramv
			sim.tlast[pop] = sim.time
		}
	case 'g':
		pop := ev.PopI
		sim.size[pop] = sim.size[pop] * math.Exp(-sim.alphag[pop]*(sim.time-sim.tlast[pop]))
		sim.alphag[pop] = ev.Paramv
		sim.tlast[pop] = sim.time
	case 'M':
		for i := 0; i < sim.npop; i++ {
			for j := 0; j < sim.npop; j++ {
				sim.migm[i][j] = ev.Paramv / float64(sim.npop-1)
			}
		}
		for i := 0; i < sim.npop; i++ {
			sim.migm[i][i] = ev.Paramv
		}
	case 'a':
		for i := 0; i < sim.npop; i++ {
			for j := 0; j < sim.npop; j++ {
				sim.migm[i][j] = ev.Mat[i][j]
			}
		}
	case 'm':
		i, j := ev.PopI, ev.PopJ
		sim.migm[i][i] += ev.Paramv - sim.migm[i][j]
		sim.migm[i][j] = ev.Paramv
	case 'j':
		i, j := ev.PopI, ev.PopJ
		sim.config[j] += sim.config[i]
		sim.config[i] = 0
		for ic := 0; ic < sim.arena.NumChrom(); ic++ {
			if sim.arena.Get(ic).Pop == i {
				sim.arena.Get(ic).Pop = j
			}
		}
		for k := 0; k < sim.npop; k++ {
			if k != i {
				sim.migm[k][k] -= sim.migm[k][i]
				sim.migm[k][i] = 0.0
			}
		}
	case 's':
		if err := sim.splitPopulation(ev.PopI, ev.Paramv); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown demographic event type %q", ev.Type)
	}
	return nil
}

// splitPopulation implements the 's' demographic event: population i is
// split into itself and a brand-new population npop, with each of i's
// current chromosomes staying in i with probability p and moving to the
// new population otherwise. Every per-population array grows by one slot.
func (sim *Simulator) splitPopulation(i int, p float64) error {
	sim.npop++
	newPop := sim.npop - 1

	sim.config = append(sim.config, 0)
	sim.size = append(sim.size, 1.0)
	sim.alphag = append(sim.alphag, 0.0)
	sim.tlast = append(sim.tlast, sim.time)

	for j := 0; j < newPop; j++ {
		sim.migm[j] = append(sim.migm[j], 0.0)
	}
	newRow := make([]float64, sim.npop)
	sim.migm = append(sim.migm, newRow)

	sim.config[newPop] = 0
	sim.config[i] = 0
	for ic := 0; ic < sim.arena.NumChrom(); ic++ {
		c := sim.arena.Get(ic)
		if c.Pop != i {
			continue
		}
		if sim.rng.Uniform() < p {
			sim.config[i]++
		} else {
			c.Pop = newPop
			sim.config[newPop]++
		}
	}
	return nil
}
