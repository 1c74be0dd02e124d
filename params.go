package segtremig

import (
	"fmt"

	"github.com/pkg/errors"
)

// DemographicEvent is one entry of the time-sorted demographic schedule
// described in spec.md section 4.F. Type selects which fields are
// meaningful:
//
//	'N' size-all     Paramv
//	'n' size-one      PopI, Paramv
//	'G' growth-all    Paramv
//	'g' growth-one     PopI, Paramv
//	'M' uniform-mig   Paramv
//	'a' full-matrix   Mat
//	'm' one-mig        PopI, PopJ, Paramv
//	'j' join            PopI, PopJ
//	's' split           PopI, Paramv
type DemographicEvent struct {
	Type   byte
	Time   float64
	PopI   int
	PopJ   int
	Paramv float64
	Mat    [][]float64
}

// Params is the validated, in-memory form of the configuration consumed
// by the core, corresponding to struct c_params in the reference
// implementation plus two ambient growth ceilings.
type Params struct {
	Nsam     int
	Npop     int
	Nsites   int
	Config   []int
	MigMat   [][]float64
	R        float64
	F        float64
	TrackLen float64
	Size     []float64
	Alphag   []float64
	Devents  []DemographicEvent

	// ChromCeiling and SeglstCeiling bound arena growth; <= 0 means
	// unbounded. They exist so AllocationFailure (spec.md section 7) has
	// a concrete, testable trigger instead of relying on the host
	// process running out of memory.
	ChromCeiling  int
	SeglstCeiling int
}

// Validate checks the structural requirements from spec.md section 6.1.
func (p *Params) Validate() error {
	if p.Nsam < 2 {
		return errors.Wrapf(ErrInvalidParameter, InvalidIntParameterError, "nsam", p.Nsam, "nsam must be >= 2")
	}
	if p.Npop < 1 {
		return errors.Wrapf(ErrInvalidParameter, InvalidIntParameterError, "npop", p.Npop, "npop must be >= 1")
	}
	if p.Nsites < 2 {
		return errors.Wrapf(ErrInvalidParameter, InvalidIntParameterError, "nsites", p.Nsites, "nsites must be >= 2")
	}
	if len(p.Config) != p.Npop {
		return errors.Wrapf(ErrInvalidParameter, DimensionMismatchError, "config", len(p.Config), p.Npop)
	}
	sum := 0
	for _, c := range p.Config {
		if c < 0 {
			return errors.Wrapf(ErrInvalidParameter, InvalidIntParameterError, "config entry", c, "population counts must be >= 0")
		}
		sum += c
	}
	if sum != p.Nsam {
		return errors.Wrapf(ErrInvalidParameter, "config sums to %d, expected nsam %d", sum, p.Nsam)
	}
	if len(p.MigMat) != p.Npop {
		return errors.Wrapf(ErrInvalidParameter, DimensionMismatchError, "mig_mat", len(p.MigMat), p.Npop)
	}
	for _, row := range p.MigMat {
		if len(row) != p.Npop {
			return errors.Wrapf(ErrInvalidParameter, DimensionMismatchError, "mig_mat row", len(row), p.Npop)
		}
	}
	if p.R < 0 {
		return errors.Wrapf(ErrInvalidParameter, InvalidFloatParameterError, "r", p.R, "r must be >= 0")
	}
	if p.F < 0 {
		return errors.Wrapf(ErrInvalidParameter, InvalidFloatParameterError, "f", p.F, "f must be >= 0")
	}
	if p.TrackLen < 1 {
		return errors.Wrapf(ErrInvalidParameter, InvalidFloatParameterError, "track_len", p.TrackLen, "track_len must be >= 1")
	}
	if len(p.Size) != p.Npop {
		return errors.Wrapf(ErrInvalidParameter, DimensionMismatchError, "size", len(p.Size), p.Npop)
	}
	if len(p.Alphag) != p.Npop {
		return errors.Wrapf(ErrInvalidParameter, DimensionMismatchError, "alphag", len(p.Alphag), p.Npop)
	}
	for i, s := range p.Size {
		if s <= 0 {
			return errors.Wrapf(ErrInvalidParameter, InvalidFloatParameterError, fmt.Sprintf("size[%d]", i), s, "population size must be > 0")
		}
	}
	prevTime := 0.0
	for i, ev := range p.Devents {
		if ev.Time < prevTime {
			return errors.Wrapf(ErrInvalidParameter, UnorderedEventListError, i, ev.Time, prevTime)
		}
		prevTime = ev.Time
	}
	return nil
}
