package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Nx[0] <= 0 || cfg.Grid.Nx[1] <= 0 {
		t.Fatalf("expected positive grid size, got %v", cfg.Grid.Nx)
	}
	if len(cfg.Species) == 0 {
		t.Fatal("expected at least one species in defaults")
	}
	if cfg.Derived.NyPerRegion != cfg.Grid.Nx[1]/cfg.Regions.NRegions {
		t.Fatalf("NyPerRegion = %d, want %d", cfg.Derived.NyPerRegion, cfg.Grid.Nx[1]/cfg.Regions.NRegions)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  dt: 0.01\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Dt != 0.01 {
		t.Fatalf("Grid.Dt = %g, want 0.01 (user override)", cfg.Grid.Dt)
	}
	if cfg.Grid.Nx[0] == 0 {
		t.Fatal("unrelated default field should survive partial override")
	}
}

func TestValidateRejectsNonDivisibleRegions(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Regions.NRegions = cfg.Grid.Nx[1] + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for non-divisible n_regions")
	}
}

func TestValidateRejectsZeroSpecies(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Species = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for empty species list")
	}
}

func TestValidateRejectsZeroQOverM(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Species[0].QOverM = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for zero q_over_m")
	}
}

func TestValidateRejectsBadProfile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Species[0].Profile = "nonsense"
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for unknown density profile")
	}
}

func TestToSpeciesConvertsFields(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sp := cfg.ToSpecies()
	if len(sp) != len(cfg.Species) {
		t.Fatalf("ToSpecies len = %d, want %d", len(sp), len(cfg.Species))
	}
	if sp[0].Name != cfg.Species[0].Name || sp[0].MQ != 1/cfg.Species[0].QOverM {
		t.Fatalf("ToSpecies field mismatch: %+v vs %+v", sp[0], cfg.Species[0])
	}
	if sp[0].Dt != cfg.Grid.Dt {
		t.Fatalf("ToSpecies.Dt = %g, want %g", sp[0].Dt, cfg.Grid.Dt)
	}
}

func TestToSpeciesInvertsQOverM(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Species[0].QOverM = 0.5
	sp := cfg.ToSpecies()
	if sp[0].MQ != 2.0 {
		t.Fatalf("MQ = %g, want 2.0 (1/q_over_m)", sp[0].MQ)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Grid.Nx[0] <= 0 {
		t.Fatal("Cfg() after Init should return loaded config")
	}
}
