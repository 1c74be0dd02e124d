package segtremig

import "github.com/pkg/errors"

// segChunk is the number of additional region slots allocated each time
// the seglst's backing array is exhausted, matching SEGINC in the
// reference simulator.
const segChunk = 80

// TreeNode is one node of a per-region genealogy. Abv is the index of the
// parent node; the zero value means "no parent yet" (true for tips that
// have not coalesced, and for the still-unassigned root slot). Time is
// the coalescence time in 4N-generation units; tips carry Time == 0.
type TreeNode struct {
	Abv  int
	Time float64
}

// SeglstEntry is one non-recombining region of the sampled chromosome: its
// start coordinate, the root array of its genealogy, the index of the
// next region in chromosome order, and the index of the last internal
// node assigned within this region's tree.
type SeglstEntry struct {
	Beg    int
	Tree   []TreeNode
	Next   int
	NNodes int
}

// Seglst is the growable, singly-linked collection of regions. Entry 0 is
// always the first region in chromosome order; regions are visited by
// following Next for exactly NumSegs() steps starting at 0 (there is no
// explicit terminal sentinel — the step count, not a marker value, ends
// traversal, exactly as in the reference simulator).
type Seglst struct {
	entries []SeglstEntry
	ceiling int
	nsam    int
}

// NewSeglst creates a Seglst with a single region spanning the whole
// chromosome, seeded with nsam tip nodes (node i < nsam has Time 0, Abv
// unset). ceiling <= 0 disables the hard growth limit.
func NewSeglst(nsam, ceiling int) *Seglst {
	s := &Seglst{
		entries: make([]SeglstEntry, 0, segChunk),
		ceiling: ceiling,
		nsam:    nsam,
	}
	s.entries = append(s.entries, SeglstEntry{
		Beg:    0,
		Tree:   make([]TreeNode, 2*nsam),
		Next:   0,
		NNodes: nsam - 1,
	})
	return s
}

// NumSegs returns the number of regions currently recorded.
func (s *Seglst) NumSegs() int { return len(s.entries) }

// Entry returns a pointer to region i. Valid until the next InsertAfter call,
// which may reallocate the backing array.
func (s *Seglst) Entry(i int) *SeglstEntry { return &s.entries[i] }

// grow enlarges the backing array by segChunk slots when full.
func (s *Seglst) grow() error {
	if len(s.entries) < cap(s.entries) {
		return nil
	}
	newCap := cap(s.entries) + segChunk
	if s.ceiling > 0 && newCap > s.ceiling {
		return errors.Wrapf(ErrAllocationFailure, "seglst would grow to %d regions, over ceiling %d", newCap, s.ceiling)
	}
	grown := make([]SeglstEntry, len(s.entries), newCap)
	copy(grown, s.entries)
	s.entries = grown
	return nil
}

// LocateRegionContaining walks the chromosome-ordered linked list starting
// at region 0 and returns the index of the region whose span covers site
// beg: the first region i in chain order such that beg <= next-region's
// Beg - 1, or the final region if beg falls past every boundary.
func (s *Seglst) LocateRegionContaining(beg int) int {
	i := 0
	n := len(s.entries)
	for k := 0; k < n-1 && beg > s.entries[s.entries[i].Next].Beg-1; k++ {
		i = s.entries[i].Next
	}
	return i
}

// InsertAfter splits region i by inserting a brand-new region starting at
// beg immediately after it in the Next chain. The new region's tree is a
// snapshot copy of region i's tree at the moment of the split: a
// genealogical twin that will diverge as later coalescences land on one
// region but not the other. Returns the new region's index.
func (s *Seglst) InsertAfter(i, beg int) (int, error) {
	if err := s.grow(); err != nil {
		return -1, err
	}
	predTree := s.entries[i].Tree
	treeCopy := make([]TreeNode, len(predTree))
	copy(treeCopy, predTree)
	newIdx := len(s.entries)
	s.entries = append(s.entries, SeglstEntry{
		Beg:    beg,
		Tree:   treeCopy,
		Next:   s.entries[i].Next,
		NNodes: s.entries[i].NNodes,
	})
	s.entries[i].Next = newIdx
	return newIdx, nil
}

// RegionEnd returns the last site covered by the region visited at step k
// of a 0-indexed traversal (region index seg, with nsegs total regions and
// nsites sites on the chromosome): the Beg of the next region minus one,
// or nsites-1 for the final region visited.
func (s *Seglst) RegionEnd(seg, k, nsegs, nsites int) int {
	if k < nsegs-1 {
		return s.entries[s.entries[seg].Next].Beg - 1
	}
	return nsites - 1
}
