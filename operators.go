package segtremig

import "math"

// xover splits chromosome ic at site is, the canonical operation behind
// crossover, left-end conversion, and internal conversion (spec.md
// section 4.E). It returns ic unchanged; the trailing fragment is always
// appended as the new last chromosome (index NumChrom()-1 on return).
func (sim *Simulator) xover(ic, is int) (int, error) {
	c := sim.arena.Get(ic)
	segs := c.Segs
	lsg := len(segs)
	oldSpan := segs[lsg-1].End - segs[0].Beg
	sim.cleft -= 1.0 - math.Pow(sim.pc, float64(oldSpan))

	jseg := 0
	for is >= segs[jseg].End {
		jseg++
	}
	in := 0
	if is >= segs[jseg].Beg {
		in = 1
	}
	newsg := lsg - jseg

	newSegs := make([]Segment, newsg)
	newSegs[0] = segs[jseg]
	if in == 1 {
		newSegs[0].Beg = is + 1
	}
	for k := 1; k < newsg; k++ {
		newSegs[k] = segs[jseg+k]
	}

	if in == 1 {
		segs[jseg].End = is
	}
	oldLen := lsg - newsg + in
	oldSegs := make([]Segment, oldLen)
	copy(oldSegs, segs[:oldLen])

	pop := c.Pop
	if _, err := sim.arena.Append(pop, newSegs); err != nil {
		return -1, err
	}
	// Append may have reallocated the arena's backing array; re-fetch
	// before writing the truncated segment list back to ic.
	sim.arena.Get(ic).Segs = oldSegs

	sim.nlinks -= newSegs[0].Beg - oldSegs[oldLen-1].End
	sim.cleft += 1.0 - math.Pow(sim.pc, float64(oldSegs[oldLen-1].End-oldSegs[0].Beg))
	sim.cleft += 1.0 - math.Pow(sim.pc, float64(newSegs[newsg-1].End-newSegs[0].Beg))

	if in == 1 {
		begs := newSegs[0].Beg
		i := sim.seglst.LocateRegionContaining(begs)
		if sim.seglst.Entry(i).Beg != begs {
			if _, err := sim.seglst.InsertAfter(i, begs); err != nil {
				return -1, err
			}
		}
	}
	return ic, nil
}

// re implements crossover: pick a uniform link, locate it on some
// chromosome, and split there.
func (sim *Simulator) re() (int, error) {
	spot := int(float64(sim.nlinks)*sim.rng.Uniform()) + 1
	ic := 0
	for {
		el := sim.arena.Links(ic)
		if spot <= el {
			break
		}
		spot -= el
		ic++
	}
	is := sim.arena.Get(ic).Segs[0].Beg + spot - 1
	return sim.xover(ic, is)
}

// cleftr implements left-end gene conversion: pick a chromosome with
// probability proportional to its (1 - pc^links) weight, then split at an
// offset drawn from the truncated geometric tract-length distribution.
func (sim *Simulator) cleftr() (int, error) {
	x := sim.cleft * drawNonZero(sim.rng)
	sum := 0.0
	ic := -1
	for sum < x {
		ic++
		sum += 1.0 - math.Pow(sim.pc, float64(sim.arena.Links(ic)))
	}
	beg := sim.arena.Get(ic).Segs[0].Beg
	length := float64(sim.arena.Links(ic))
	u := sim.rng.Uniform()
	is := beg + int(math.Floor(1.0+math.Log(1.0-(1.0-math.Pow(sim.pc, length))*u)/sim.lnpc)) - 1
	return sim.xover(ic, is)
}

// cinr implements internal gene conversion: split at a random link like
// re, then draw a tract length and either let the tract run off the end
// (a plain crossover), coalesce the tract back into ic before it reaches
// the freshly split trailing fragment, or split off the fragment beyond
// the tract's far end and coalesce that far fragment back into ic,
// leaving the tract itself as a separate lineage.
func (sim *Simulator) cinr() (int, error) {
	spot := int(float64(sim.nlinks)*sim.rng.Uniform()) + 1
	ic := 0
	for {
		el := sim.arena.Links(ic)
		if spot <= el {
			break
		}
		spot -= el
		ic++
	}
	segsIc := sim.arena.Get(ic).Segs
	is := segsIc[0].Beg + spot - 1
	endic := segsIc[len(segsIc)-1].End

	if _, err := sim.xover(ic, is); err != nil {
		return -1, err
	}
	trail := sim.arena.NumChrom() - 1

	length := int(math.Floor(1.0 + math.Log(drawNonZero(sim.rng))/sim.lnpc))
	if is+length >= endic {
		return ic, nil
	}
	if is+length < sim.arena.Get(trail).Segs[0].Beg {
		if _, err := sim.ca(ic, trail); err != nil {
			return -1, err
		}
		return -1, nil
	}
	if _, err := sim.xover(trail, is+length); err != nil {
		return -1, err
	}
	// xover(trail, ...) appended the far fragment beyond the tract as the
	// new last chromosome; trail itself is now just the converted tract
	// and must be left as its own lineage, so ic coalesces with the far
	// fragment, not with trail.
	far := sim.arena.NumChrom() - 1
	if _, err := sim.ca(ic, far); err != nil {
		return -1, err
	}
	return ic, nil
}

// isseg reports whether chromosome c has a segment containing site start,
// advancing the monotonically nondecreasing cursor psg as it scans.
func (sim *Simulator) isseg(start, c int, psg *int) bool {
	segs := sim.arena.Get(c).Segs
	ns := len(segs)
	for *psg < ns && segs[*psg].Beg <= start {
		if segs[*psg].End >= start {
			return true
		}
		*psg++
	}
	return false
}

// pick2 draws two distinct indices uniformly from [0, n).
func pick2(rng RandSource, n int) (int, int) {
	i := int(rng.Uniform() * float64(n))
	j := int(rng.Uniform() * float64(n-1))
	if j >= i {
		j++
	}
	return i, j
}

// pick2Chrom picks two distinct chromosomes uniformly from population
// pop: two distinct local indices in [0, config[pop)) are drawn, then
// mapped to global chromosome indices by a single linear scan, per
// spec.md section 4.E.
func (sim *Simulator) pick2Chrom(pop int) (int, int) {
	c1, c2 := pick2(sim.rng, sim.config[pop])
	cs, cb := c1, c2
	if cs > cb {
		cs, cb = cb, cs
	}
	matches := make([]int, 0, cb+1)
	for i := 0; i < sim.arena.NumChrom() && len(matches) <= cb; i++ {
		if sim.arena.Get(i).Pop == pop {
			matches = append(matches, i)
		}
	}
	return matches[cs], matches[cb]
}

// ca is the common-ancestor operator: merge chromosomes c1 and c2,
// recording a new internal tree node wherever both have ancestral
// material over the same region, and return how much config[pop] should
// decrease by (1 normally, 2 when no ancestral material survives the
// merge so both chromosomes are removed).
func (sim *Simulator) ca(c1, c2 int) (int, error) {
	nsegs := sim.seglst.NumSegs()
	pseg := make([]Segment, nsegs)
	tseg := -1
	seg1, seg2 := 0, 0

	for seg, k := 0, 0; k < nsegs; seg, k = sim.seglst.Entry(seg).Next, k+1 {
		start := sim.seglst.Entry(seg).Beg
		yes1 := sim.isseg(start, c1, &seg1)
		yes2 := sim.isseg(start, c2, &seg2)
		if !yes1 && !yes2 {
			continue
		}
		tseg++
		end := sim.seglst.RegionEnd(seg, k, nsegs, sim.nsites)
		pseg[tseg] = Segment{Beg: start, End: end}
		switch {
		case yes1 && yes2:
			entry := sim.seglst.Entry(seg)
			entry.NNodes++
			if entry.NNodes >= 2*sim.nsam-2 {
				tseg--
			} else {
				pseg[tseg].Desc = entry.NNodes
			}
			desc1 := sim.arena.Get(c1).Segs[seg1].Desc
			desc2 := sim.arena.Get(c2).Segs[seg2].Desc
			entry.Tree[desc1].Abv = entry.NNodes
			entry.Tree[desc2].Abv = entry.NNodes
			entry.Tree[entry.NNodes].Time = sim.time
		case yes1:
			pseg[tseg].Desc = sim.arena.Get(c1).Segs[seg1].Desc
		default:
			pseg[tseg].Desc = sim.arena.Get(c2).Segs[seg2].Desc
		}
	}

	sim.nlinks -= sim.arena.Links(c1)
	sim.cleft -= 1.0 - math.Pow(sim.pc, float64(sim.arena.Links(c1)))

	if tseg < 0 {
		last := sim.arena.SwapDelete(c1)
		if c2 == last {
			c2 = c1
		}
	} else {
		merged := make([]Segment, tseg+1)
		copy(merged, pseg[:tseg+1])
		sim.arena.Get(c1).Segs = merged
		sim.nlinks += sim.arena.Links(c1)
		sim.cleft += 1.0 - math.Pow(sim.pc, float64(sim.arena.Links(c1)))
	}

	sim.nlinks -= sim.arena.Links(c2)
	sim.cleft -= 1.0 - math.Pow(sim.pc, float64(sim.arena.Links(c2)))
	sim.arena.SwapDelete(c2)

	if tseg < 0 {
		return 2, nil
	}
	return 1, nil
}

// dispatchRecombinationClass decides, given that the combined
// recombination/conversion rate already won the race, which of the three
// sub-event types actually fires, and posts the resulting config[pop]
// increment.
func (sim *Simulator) dispatchRecombinationClass(cand rateCandidate) error {
	ran := sim.rng.Uniform()
	var (
		ic  int
		err error
	)
	switch {
	case ran < cand.prec/cand.prect:
		ic, err = sim.re()
	case ran < (cand.prec+cand.clefta)/cand.prect:
		ic, err = sim.cleftr()
	default:
		ic, err = sim.cinr()
	}
	if err != nil {
		return err
	}
	if ic >= 0 {
		sim.config[sim.arena.Get(ic).Pop]++
	}
	return nil
}

// dispatchMigration picks a migrant chromosome in proportion to its
// population's outgoing rate, then a destination population in
// proportion to that population's per-destination rate.
func (sim *Simulator) dispatchMigration(cand rateCandidate) error {
	x := cand.mig * sim.rng.Uniform()
	sum := 0.0
	i := 0
	for ; i < sim.arena.NumChrom(); i++ {
		pop := sim.arena.Get(i).Pop
		sum += sim.migm[pop][pop]
		if x < sum {
			break
		}
	}
	migrant := i
	srcPop := sim.arena.Get(migrant).Pop

	x = sim.rng.Uniform() * sim.migm[srcPop][srcPop]
	sum = 0.0
	j := 0
	for ; j < sim.npop; j++ {
		if j == srcPop {
			continue
		}
		sum += sim.migm[srcPop][j]
		if x < sum {
			break
		}
	}
	destPop := j

	sim.config[srcPop]--
	sim.config[destPop]++
	sim.arena.Get(migrant).Pop = destPop
	return nil
}

// dispatchCoalescent merges two uniformly chosen chromosomes from cpop.
func (sim *Simulator) dispatchCoalescent(cpop int) error {
	c1, c2 := sim.pick2Chrom(cpop)
	dec, err := sim.ca(c1, c2)
	if err != nil {
		return err
	}
	sim.config[cpop] -= dec
	return nil
}
