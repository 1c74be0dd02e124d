package segtremig

import "testing"

func sampleCoalescentConfig() *CoalescentConfig {
	return &CoalescentConfig{
		Coalescent: coalescentParams{
			Nsam:     4,
			Npop:     2,
			Nsites:   100,
			Config:   []int{2, 2},
			MigMat:   [][]float64{{0, 0}, {0, 0}},
			R:        0,
			F:        0,
			TrackLen: 1,
			Size:     []float64{1, 1},
			Alphag:   []float64{0, 0},
		},
		Devents:       nil,
		NumReplicates: 10,
		LogFormat:     "csv",
	}
}

func TestCoalescentConfig_Validate_OK(t *testing.T) {
	c := sampleCoalescentConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCoalescentConfig_Validate_BadLogFormat(t *testing.T) {
	c := sampleCoalescentConfig()
	c.LogFormat = "xml"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unrecognized log_format, got nil")
	}
}

func TestCoalescentConfig_Validate_ZeroReplicates(t *testing.T) {
	c := sampleCoalescentConfig()
	c.NumReplicates = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for num_replicates < 1, got nil")
	}
}

func TestCoalescentConfig_ToParams(t *testing.T) {
	c := sampleCoalescentConfig()
	c.Devents = []deventConfig{
		{Type: "n", Time: 1.0, PopI: 0, Paramv: 2.0},
	}
	p, err := c.ToParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Nsam != 4 || p.Npop != 2 {
		t.Errorf("got Nsam=%d Npop=%d, want 4, 2", p.Nsam, p.Npop)
	}
	if len(p.Devents) != 1 || p.Devents[0].Type != 'n' {
		t.Fatalf("devent type not carried through: %+v", p.Devents)
	}
}

func TestCoalescentConfig_ToParams_BadDeventType(t *testing.T) {
	c := sampleCoalescentConfig()
	c.Devents = []deventConfig{{Type: "multi", Time: 1.0}}
	if _, err := c.ToParams(); err == nil {
		t.Error("expected error for multi-character devent type, got nil")
	}
}

func TestCoalescentConfig_NewSimulator_RequiresValidate(t *testing.T) {
	c := sampleCoalescentConfig()
	if _, err := c.NewSimulator(NewMathRandSource(1)); err == nil {
		t.Error("expected error when NewSimulator is called before Validate, got nil")
	}
}

func TestCoalescentConfig_NewSimulator_OK(t *testing.T) {
	c := sampleCoalescentConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	sim, err := c.NewSimulator(NewMathRandSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if sim.nsam != 4 {
		t.Errorf("got nsam %d, want 4", sim.nsam)
	}
}
