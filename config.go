package segtremig

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// CoalescentConfig is the TOML-decoded form of a run, mirroring c_params
// from the reference simulator plus the ambient fields a driver loop
// needs (spec.md section 6.1, SPEC_FULL.md section 4.H).
type CoalescentConfig struct {
	Coalescent    coalescentParams `toml:"coalescent"`
	Devents       []deventConfig   `toml:"devent"`
	NumReplicates int              `toml:"num_replicates"`
	LogPath       string           `toml:"log_path"`
	LogFormat     string           `toml:"log_format"` // csv or sqlite
	Seed          int64            `toml:"seed"`        // 0 means "seed from wall clock"

	validated bool
}

type coalescentParams struct {
	Nsam     int         `toml:"nsam"`
	Npop     int         `toml:"npop"`
	Nsites   int         `toml:"nsites"`
	Config   []int       `toml:"config"`
	MigMat   [][]float64 `toml:"mig_mat"`
	R        float64     `toml:"r"`
	F        float64     `toml:"f"`
	TrackLen float64     `toml:"track_len"`
	Size     []float64   `toml:"size"`
	Alphag   []float64   `toml:"alphag"`

	ChromCeiling  int `toml:"chrom_ceiling"`
	SeglstCeiling int `toml:"seglst_ceiling"`
}

// deventConfig is one [[devent]] table. Type selects which of the
// remaining fields are meaningful, exactly as DemographicEvent documents.
type deventConfig struct {
	Type   string      `toml:"type"`
	Time   float64     `toml:"time"`
	PopI   int         `toml:"pop_i"`
	PopJ   int         `toml:"pop_j"`
	Paramv float64     `toml:"paramv"`
	Mat    [][]float64 `toml:"mat"`
}

// LoadCoalescentConfig parses a TOML config file into a CoalescentConfig,
// in the style of the teacher's LoadEvoEpiConfig/LoadSingleHostConfig.
func LoadCoalescentConfig(path string) (*CoalescentConfig, error) {
	var conf CoalescentConfig
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode coalescent config at %s", path)
	}
	return &conf, nil
}

// Validate checks the structural requirements from spec.md section 6.1
// by converting to a Params and delegating, the way the teacher's
// section configs each carry their own Validate but ultimately feed one
// top-level struct.
func (c *CoalescentConfig) Validate() error {
	if c.NumReplicates < 1 {
		return errors.Wrapf(ErrInvalidParameter, InvalidIntParameterError, "num_replicates", c.NumReplicates, "must be >= 1")
	}
	switch c.LogFormat {
	case "csv", "sqlite", "":
	default:
		return errors.Errorf("unrecognized log_format %q, expected csv or sqlite", c.LogFormat)
	}
	if _, err := c.ToParams(); err != nil {
		return err
	}
	c.validated = true
	return nil
}

// ToParams converts the decoded TOML shape into the core's Params,
// validating it along the way.
func (c *CoalescentConfig) ToParams() (*Params, error) {
	devents := make([]DemographicEvent, len(c.Devents))
	for i, d := range c.Devents {
		if len(d.Type) != 1 {
			return nil, errors.Wrapf(ErrInvalidParameter, InvalidStringParameterError, "devent type", d.Type, "must be a single character")
		}
		devents[i] = DemographicEvent{
			Type:   d.Type[0],
			Time:   d.Time,
			PopI:   d.PopI,
			PopJ:   d.PopJ,
			Paramv: d.Paramv,
			Mat:    d.Mat,
		}
	}
	p := &Params{
		Nsam:          c.Coalescent.Nsam,
		Npop:          c.Coalescent.Npop,
		Nsites:        c.Coalescent.Nsites,
		Config:        c.Coalescent.Config,
		MigMat:        c.Coalescent.MigMat,
		R:             c.Coalescent.R,
		F:             c.Coalescent.F,
		TrackLen:      c.Coalescent.TrackLen,
		Size:          c.Coalescent.Size,
		Alphag:        c.Coalescent.Alphag,
		Devents:       devents,
		ChromCeiling:  c.Coalescent.ChromCeiling,
		SeglstCeiling: c.Coalescent.SeglstCeiling,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewSimulator builds a runnable Simulator from a validated config,
// mirroring Config.NewSimulation in the teacher.
func (c *CoalescentConfig) NewSimulator(rng RandSource) (*Simulator, error) {
	if !c.validated {
		return nil, errors.New("validate configuration first")
	}
	p, err := c.ToParams()
	if err != nil {
		return nil, err
	}
	return NewSimulator(p, rng)
}
