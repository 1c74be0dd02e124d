package segtremig

import "github.com/pkg/errors"

// chromChunk is the number of additional chromosome slots allocated each
// time the arena's backing array is exhausted, amortizing growth the way
// the reference simulator enlarges its chromosome array by a fixed
// increment rather than one slot at a time.
const chromChunk = 40

// Segment is a half-open-free interval [Beg, End] of ancestral material on
// one chromosome, together with the tree-node index it descends from.
type Segment struct {
	Beg  int
	End  int
	Desc int
}

// Chromosome is an ancestral lineage: an ordered, disjoint list of
// segments plus the population it currently resides in.
type Chromosome struct {
	Segs []Segment
	Pop  int
}

// Links returns the number of recombinable positions spanned by c:
// the distance between the end of its last segment and the start of its
// first.
func (c *Chromosome) Links() int {
	return c.Segs[len(c.Segs)-1].End - c.Segs[0].Beg
}

// ChromosomeArena owns every live Chromosome. Callers address chromosomes
// by dense index in [0, NumChrom()); SwapDelete invalidates the index of
// whichever chromosome previously occupied the last live slot, mirroring
// the reference implementation's realloc-and-compact discipline.
type ChromosomeArena struct {
	chrom   []Chromosome
	ceiling int
}

// NewChromosomeArena allocates an arena sized for nsam initial lineages
// plus headroom, matching maxchr = nsam + 20 in the reference simulator.
// ceiling <= 0 disables the hard growth limit.
func NewChromosomeArena(nsam, ceiling int) *ChromosomeArena {
	return &ChromosomeArena{
		chrom:   make([]Chromosome, 0, nsam+20),
		ceiling: ceiling,
	}
}

// NumChrom returns the number of live chromosomes.
func (a *ChromosomeArena) NumChrom() int { return len(a.chrom) }

// Get returns a pointer to chromosome i. The pointer is only valid until
// the next call to Append, which may reallocate the backing array.
func (a *ChromosomeArena) Get(i int) *Chromosome { return &a.chrom[i] }

// Links returns the number of recombinable positions held by chromosome i.
func (a *ChromosomeArena) Links(i int) int { return a.chrom[i].Links() }

// grow enlarges the backing array by chromChunk slots when full.
func (a *ChromosomeArena) grow() error {
	if len(a.chrom) < cap(a.chrom) {
		return nil
	}
	newCap := cap(a.chrom) + chromChunk
	if a.ceiling > 0 && newCap > a.ceiling {
		return errors.Wrapf(ErrAllocationFailure, "chromosome arena would grow to %d slots, over ceiling %d", newCap, a.ceiling)
	}
	grown := make([]Chromosome, len(a.chrom), newCap)
	copy(grown, a.chrom)
	a.chrom = grown
	return nil
}

// Append adds a new chromosome with the given population and segment
// list, growing the arena if necessary, and returns its index.
func (a *ChromosomeArena) Append(pop int, segs []Segment) (int, error) {
	if err := a.grow(); err != nil {
		return -1, err
	}
	a.chrom = append(a.chrom, Chromosome{Segs: segs, Pop: pop})
	return len(a.chrom) - 1, nil
}

// SwapDelete removes chromosome i by moving the chromosome occupying the
// last live slot into slot i (a no-op move when i is already last), then
// shrinking the live count by one. It returns the index that was
// previously last: any other cursor holding that index must be treated as
// now referring to slot i (or as stale if it equaled i already).
func (a *ChromosomeArena) SwapDelete(i int) int {
	last := len(a.chrom) - 1
	if i != last {
		a.chrom[i] = a.chrom[last]
	}
	a.chrom = a.chrom[:last]
	return last
}
