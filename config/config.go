// Package config provides configuration loading and access for the
// simulation: an embedded defaults.yaml unmarshaled first, then an
// optional user file layered over it, then a derived-values pass.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pic2d/particles"
	"github.com/pthm-cable/pic2d/picerr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Regions RegionsConfig `yaml:"regions"`
	Tile    TileConfig    `yaml:"tile"`
	Species []SpeciesSpec `yaml:"species"`
	Laser   LaserConfig   `yaml:"laser"`
	Output  OutputConfig  `yaml:"output"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the global grid and time-stepping parameters.
type GridConfig struct {
	Nx           [2]int     `yaml:"nx"`
	Box          [2]float64 `yaml:"box"`
	GC           [2][2]int  `yaml:"gc"`
	Dt           float64    `yaml:"dt"`
	Tmax         float64    `yaml:"tmax"`
	Ndump        int        `yaml:"ndump"`
	MovingWindow bool       `yaml:"moving_window"`
}

// RegionsConfig holds region decomposition and scheduler parameters.
type RegionsConfig struct {
	NRegions    int     `yaml:"n_regions"`
	GPUFraction float64 `yaml:"gpu_fraction"`
	NGPURegions int     `yaml:"n_gpu_regions"`
	QueueCount  int     `yaml:"queue_count"`
}

// TileConfig holds the particle tiling edge size.
type TileConfig struct {
	Size int `yaml:"size"`
}

// SpeciesSpec holds one species' physical parameters as loaded from YAML.
type SpeciesSpec struct {
	Name string `yaml:"name"`

	QOverM float64 `yaml:"q_over_m"`
	Q      float64 `yaml:"q"`

	PPC [2]int `yaml:"ppc"`

	Ufl [3]float64 `yaml:"ufl"`
	Uth [3]float64 `yaml:"uth"`

	Profile      string  `yaml:"profile"`
	ProfileN     float64 `yaml:"profile_n"`
	ProfileStart float64 `yaml:"profile_start"`
	ProfileEnd   float64 `yaml:"profile_end"`

	MovingWindow bool `yaml:"moving_window"`
}

// LaserConfig holds the field-injection parameters. The injection
// procedure itself is an external collaborator; this package only carries
// and validates the parameters.
type LaserConfig struct {
	Enable bool    `yaml:"enable"`
	FWHM   float64 `yaml:"fwhm"`
	Rise   float64 `yaml:"rise"`
	Fall   float64 `yaml:"fall"`
	Flat   float64 `yaml:"flat"`
}

// OutputConfig holds diagnostic output parameters.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	PerfReport bool   `yaml:"perf_report"`
}

// DerivedConfig holds values computed after loading, not read from YAML.
type DerivedConfig struct {
	NyPerRegion int
	NSteps      int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults, then validates and computes derived values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded configuration for the constraints the
// simulation core relies on, returning a picerr.ConfigError for the first
// violation found.
func (c *Config) Validate() error {
	if c.Grid.Nx[0] <= 0 || c.Grid.Nx[1] <= 0 {
		return picerr.Config("grid.nx", "must be positive, got %v", c.Grid.Nx)
	}
	if c.Grid.Box[0] <= 0 || c.Grid.Box[1] <= 0 {
		return picerr.Config("grid.box", "must be positive, got %v", c.Grid.Box)
	}
	if c.Grid.Dt <= 0 {
		return picerr.Config("grid.dt", "must be positive, got %g", c.Grid.Dt)
	}
	if c.Grid.Ndump <= 0 {
		return picerr.Config("grid.ndump", "must be positive, got %d", c.Grid.Ndump)
	}
	if c.Regions.NRegions <= 0 {
		return picerr.Config("regions.n_regions", "must be positive, got %d", c.Regions.NRegions)
	}
	if c.Grid.Nx[1]%c.Regions.NRegions != 0 {
		return picerr.Config("regions.n_regions", "nx[1]=%d not evenly divisible by n_regions=%d", c.Grid.Nx[1], c.Regions.NRegions)
	}
	if c.Regions.GPUFraction < 0 || c.Regions.GPUFraction > 1 {
		return picerr.Config("regions.gpu_fraction", "must be in [0,1], got %g", c.Regions.GPUFraction)
	}
	if c.Tile.Size <= 0 {
		return picerr.Config("tile.size", "must be positive, got %d", c.Tile.Size)
	}
	if c.Grid.Nx[0]%c.Tile.Size != 0 || (c.Grid.Nx[1]/c.Regions.NRegions)%c.Tile.Size != 0 {
		return picerr.Config("tile.size", "%d must evenly divide both grid axes per region", c.Tile.Size)
	}
	if len(c.Species) == 0 {
		return picerr.Config("species", "at least one species is required")
	}
	for _, sp := range c.Species {
		if sp.Name == "" {
			return picerr.Config("species.name", "must not be empty")
		}
		if sp.PPC[0] <= 0 || sp.PPC[1] <= 0 {
			return picerr.Config("species.ppc", "%s: must be positive, got %v", sp.Name, sp.PPC)
		}
		if sp.QOverM == 0 {
			return picerr.Config("species.q_over_m", "%s: must not be zero", sp.Name)
		}
		switch sp.Profile {
		case "", "uniform", "step", "slab":
		default:
			return picerr.Config("species.profile", "%s: unknown profile %q", sp.Name, sp.Profile)
		}
		if (sp.Profile == "step" || sp.Profile == "slab") && sp.ProfileEnd <= sp.ProfileStart {
			return picerr.Config("species.profile_end", "%s: profile_end must exceed profile_start", sp.Name)
		}
	}
	if c.Laser.Enable && c.Laser.FWHM <= 0 {
		return picerr.Config("laser.fwhm", "must be positive when laser.enable is set")
	}
	if c.Laser.Enable && c.Laser.Rise <= 0 {
		return picerr.Config("laser.rise", "must be positive when laser.enable is set")
	}
	if c.Laser.Enable && c.Laser.Fall <= 0 {
		return picerr.Config("laser.fall", "must be positive when laser.enable is set")
	}
	if c.Laser.Enable && c.Laser.Flat < 0 {
		return picerr.Config("laser.flat", "must not be negative when laser.enable is set")
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.NyPerRegion = c.Grid.Nx[1] / c.Regions.NRegions
	if c.Grid.Dt > 0 {
		c.Derived.NSteps = int(c.Grid.Tmax / c.Grid.Dt)
	}
}

// ToSpecies converts the loaded species specs into particles.Species
// values, the form the simulation core consumes.
func (c *Config) ToSpecies() []*particles.Species {
	out := make([]*particles.Species, len(c.Species))
	for i, sp := range c.Species {
		out[i] = &particles.Species{
			Name:         sp.Name,
			MQ:           1 / sp.QOverM,
			Q:            sp.Q,
			PPC:          sp.PPC,
			Ufl:          sp.Ufl,
			Uth:          sp.Uth,
			Profile:      densityProfile(sp.Profile),
			ProfileN:     sp.ProfileN,
			ProfileStart: sp.ProfileStart,
			ProfileEnd:   sp.ProfileEnd,
			Dt:           c.Grid.Dt,
			MovingWindow: sp.MovingWindow,
		}
	}
	return out
}

func densityProfile(name string) particles.DensityProfile {
	switch name {
	case "step":
		return particles.STEP
	case "slab":
		return particles.SLAB
	default:
		return particles.UNIFORM
	}
}
