package segtremig

import (
	"math"
	"testing"
)

func TestPeekDemographicEvent(t *testing.T) {
	sim := &Simulator{devents: []DemographicEvent{{Type: 'N', Time: 1.0}}}
	if ev := sim.peekDemographicEvent(); ev == nil || ev.Time != 1.0 {
		t.Fatalf("got %+v, want the single devent", ev)
	}
	sim.devIdx = 1
	if ev := sim.peekDemographicEvent(); ev != nil {
		t.Errorf("got %+v, want nil once schedule is exhausted", ev)
	}
}

func TestApplyDemographicEvent_SizeAll(t *testing.T) {
	sim := &Simulator{npop: 2, size: []float64{1, 1}, alphag: []float64{0.1, 0.2}}
	ev := &DemographicEvent{Type: 'N', Time: 2.0, Paramv: 5.0}
	if err := sim.applyDemographicEvent(ev); err != nil {
		t.Fatal(err)
	}
	if sim.time != 2.0 {
		t.Errorf("got time %v, want 2.0", sim.time)
	}
	for i, s := range sim.size {
		if s != 5.0 {
			t.Errorf("size[%d] = %v, want 5.0", i, s)
		}
	}
	for i, a := range sim.alphag {
		if a != 0 {
			t.Errorf("alphag[%d] = %v, want 0", i, a)
		}
	}
	if sim.devIdx != 1 {
		t.Errorf("got devIdx %d, want 1", sim.devIdx)
	}
}

func TestApplyDemographicEvent_SizeOne(t *testing.T) {
	sim := &Simulator{npop: 2, size: []float64{1, 1}, alphag: []float64{0.1, 0.2}}
	ev := &DemographicEvent{Type: 'n', PopI: 1, Paramv: 9.0}
	if err := sim.applyDemographicEvent(ev); err != nil {
		t.Fatal(err)
	}
	if sim.size[0] != 1 || sim.size[1] != 9.0 {
		t.Errorf("got size %v, want [1, 9]", sim.size)
	}
	if sim.alphag[1] != 0 {
		t.Errorf("alphag[1] = %v, want 0", sim.alphag[1])
	}
}

func TestApplyDemographicEvent_GrowthOne(t *testing.T) {
	sim := &Simulator{
		npop: 1, time: 2.0,
		size: []float64{4.0}, alphag: []float64{1.0}, tlast: []float64{1.0},
	}
	ev := &DemographicEvent{Type: 'g', Time: 2.0, PopI: 0, Paramv: 0.5}
	if err := sim.applyDemographicEvent(ev); err != nil {
		t.Fatal(err)
	}
	want := 4.0 * math.Exp(-1.0*(2.0-1.0))
	if math.Abs(sim.size[0]-want) > 1e-9 {
		t.Errorf("got size %v, want %v", sim.size[0], want)
	}
	if sim.alphag[0] != 0.5 {
		t.Errorf("got alphag %v, want 0.5", sim.alphag[0])
	}
	if sim.tlast[0] != 2.0 {
		t.Errorf("got tlast %v, want 2.0", sim.tlast[0])
	}
}

func TestApplyDemographicEvent_Join(t *testing.T) {
	sim := &Simulator{
		npop:   2,
		config: []int{2, 1},
		migm:   [][]float64{{0.5, 0.2}, {0.3, 0.5}},
		arena:  NewChromosomeArena(3, 0),
	}
	sim.arena.Append(0, []Segment{{Beg: 0, End: 1}})
	sim.arena.Append(0, []Segment{{Beg: 0, End: 1}})
	sim.arena.Append(1, []Segment{{Beg: 0, End: 1}})

	ev := &DemographicEvent{Type: 'j', Time: 1.0, PopI: 0, PopJ: 1}
	if err := sim.applyDemographicEvent(ev); err != nil {
		t.Fatal(err)
	}
	if sim.config[0] != 0 || sim.config[1] != 3 {
		t.Errorf("got config %v, want [0, 3]", sim.config)
	}
	for i := 0; i < sim.arena.NumChrom(); i++ {
		if sim.arena.Get(i).Pop != 1 {
			t.Errorf("chromosome %d still in pop %d, want 1", i, sim.arena.Get(i).Pop)
		}
	}
	if sim.migm[1][0] != 0 {
		t.Errorf("migm[1][0] = %v, want 0 after absorbing pop 0", sim.migm[1][0])
	}
}

func TestApplyDemographicEvent_Split(t *testing.T) {
	sim := &Simulator{
		npop:   1,
		config: []int{3},
		size:   []float64{1},
		alphag: []float64{0},
		tlast:  []float64{0},
		migm:   [][]float64{{0}},
		arena:  NewChromosomeArena(3, 0),
		rng:    scripted(0.0), // always "stays" (u < p)
	}
	sim.arena.Append(0, []Segment{{Beg: 0, End: 1}})
	sim.arena.Append(0, []Segment{{Beg: 0, End: 1}})
	sim.arena.Append(0, []Segment{{Beg: 0, End: 1}})

	ev := &DemographicEvent{Type: 's', PopI: 0, Paramv: 1.0}
	if err := sim.applyDemographicEvent(ev); err != nil {
		t.Fatal(err)
	}
	if sim.npop != 2 {
		t.Fatalf("got npop %d, want 2", sim.npop)
	}
	if sim.config[0] != 3 || sim.config[1] != 0 {
		t.Errorf("got config %v, want [3, 0] when every draw stays", sim.config)
	}
	if len(sim.migm) != 2 || len(sim.migm[0]) != 2 || len(sim.migm[1]) != 2 {
		t.Errorf("migration matrix not resized to 2x2: %v", sim.migm)
	}
}

func TestApplyDemographicEvent_UnknownType(t *testing.T) {
	sim := &Simulator{npop: 1}
	ev := &DemographicEvent{Type: 'z'}
	if err := sim.applyDemographicEvent(ev); err == nil {
		t.Error("expected error for unknown devent type, got nil")
	}
}
