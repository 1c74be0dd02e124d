package segtremig

import "testing"

func TestChromosome_Links(t *testing.T) {
	c := &Chromosome{Segs: []Segment{{Beg: 5, End: 10}, {Beg: 20, End: 30}}}
	if l := c.Links(); l != 25 {
		t.Errorf("got links %d, want 25", l)
	}
}

func TestChromosomeArena_AppendAndGet(t *testing.T) {
	a := NewChromosomeArena(2, 0)
	i, err := a.Append(0, []Segment{{Beg: 0, End: 9}})
	if err != nil {
		t.Fatal(err)
	}
	if i != 0 {
		t.Errorf("got index %d, want 0", i)
	}
	if n := a.NumChrom(); n != 1 {
		t.Errorf("got NumChrom %d, want 1", n)
	}
	if a.Get(0).Pop != 0 {
		t.Errorf("got pop %d, want 0", a.Get(0).Pop)
	}
}

func TestChromosomeArena_SwapDelete(t *testing.T) {
	a := NewChromosomeArena(3, 0)
	a.Append(0, []Segment{{Beg: 0, End: 1}})
	a.Append(1, []Segment{{Beg: 0, End: 1}})
	a.Append(2, []Segment{{Beg: 0, End: 1}})

	last := a.SwapDelete(0)
	if last != 2 {
		t.Errorf("got previously-last index %d, want 2", last)
	}
	if a.NumChrom() != 2 {
		t.Errorf("got NumChrom %d, want 2", a.NumChrom())
	}
	if a.Get(0).Pop != 2 {
		t.Errorf("slot 0 holds pop %d, want 2 (moved from last)", a.Get(0).Pop)
	}
}

func TestChromosomeArena_GrowRespectsCeiling(t *testing.T) {
	a := NewChromosomeArena(0, 1)
	a.chrom = a.chrom[:0:0]
	if _, err := a.Append(0, []Segment{{Beg: 0, End: 1}}); err == nil {
		t.Error("expected allocation failure when a single chunk of growth exceeds the ceiling, got nil")
	}
}
