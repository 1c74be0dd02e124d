package segtremig

import "testing"

func sampleParams() *Params {
	return &Params{
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
	}
}

func TestParams_Validate_OK(t *testing.T) {
	p := sampleParams()
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid params, got %v", err)
	}
}

func TestParams_Validate_NsamTooSmall(t *testing.T) {
	p := sampleParams()
	p.Nsam = 1
	p.Config = []int{1, 0}
	if err := p.Validate(); err == nil {
		t.Error("expected error for nsam < 2, got nil")
	}
}

func TestParams_Validate_ConfigSumMismatch(t *testing.T) {
	p := sampleParams()
	p.Config = []int{1, 1}
	if err := p.Validate(); err == nil {
		t.Error("expected error when config sums to less than nsam, got nil")
	}
}

func TestParams_Validate_ConfigDimensionMismatch(t *testing.T) {
	p := sampleParams()
	p.Config = []int{4}
	if err := p.Validate(); err == nil {
		t.Error("expected error when len(config) != npop, got nil")
	}
}

func TestParams_Validate_MigMatDimensionMismatch(t *testing.T) {
	p := sampleParams()
	p.MigMat = [][]float64{{0, 0}}
	if err := p.Validate(); err == nil {
		t.Error("expected error when len(mig_mat) != npop, got nil")
	}
}

func TestParams_Validate_NegativeSize(t *testing.T) {
	p := sampleParams()
	p.Size = []float64{1, -1}
	if err := p.Validate(); err == nil {
		t.Error("expected error for non-positive population size, got nil")
	}
}

func TestParams_Validate_UnorderedDevents(t *testing.T) {
	p := sampleParams()
	p.Devents = []DemographicEvent{
		{Type: 'j', Time: 1.0, PopI: 0, PopJ: 1},
		{Type: 'N', Time: 0.5, Paramv: 2},
	}
	if err := p.Validate(); err == nil {
		t.Error("expected error for out-of-order devent times, got nil")
	}
}
