// Package config loads cmd/train's construction parameters from a YAML
// file, with command-line flags (spf13/pflag) able to override any
// field. This mirrors the flags-plus-optional-file layering the wider
// retrieval pack uses for its own CLI binaries.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds every construction parameter enumerated in spec.md §6,
// plus the ambient parameters SPEC_FULL.md adds (seed, corpus_dir,
// resample_every, monitor_addr, live_frames, corpus_fec) and the
// runtime-only ListDevices flag.
type Config struct {
	CodebookSize  int     `yaml:"codebook_size"`
	NumUnits      int     `yaml:"num_units"`
	NumUnitStates int     `yaml:"num_unit_states"`
	ObsPrior      float64 `yaml:"obs_prior"`
	TransPrior    float64 `yaml:"trans_prior"`
	Seed          uint64  `yaml:"seed"`
	CorpusDir     string  `yaml:"corpus_dir"`
	ResampleEvery int     `yaml:"resample_every"`
	MonitorAddr   string  `yaml:"monitor_addr"`
	LiveFrames    int     `yaml:"live_frames"`
	CorpusFEC     bool    `yaml:"corpus_fec"`

	// ListDevices is a pure runtime flag, never read from a YAML file:
	// when set, cmd/train prints audio devices and exits instead of
	// training.
	ListDevices bool `yaml:"-"`
}

// defaults mirrors hmm.Config.WithDefaults plus the ambient fields'
// own sensible defaults.
func defaults() Config {
	return Config{
		NumUnitStates: 3,
		ObsPrior:      1.0,
		TransPrior:    1.0,
		Seed:          1,
		ResampleEvery: 1,
		MonitorAddr:   ":8090",
	}
}

// Load builds a Config from args: --config points at a YAML file whose
// fields seed the result, and every other flag overrides the
// corresponding field when explicitly set on the command line.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("train", pflag.ContinueOnError)

	configPath := fs.String("config", "", "Path to a YAML config file.")
	codebookSize := fs.Int("codebook-size", 0, "Discrete codebook size (K).")
	numUnits := fs.Int("num-units", 0, "Number of acoustic units (U).")
	numUnitStates := fs.Int("num-unit-states", 0, "States per unit (S). Default 3.")
	obsPrior := fs.Float64("obs-prior", 0, "Dirichlet prior mass for emissions. Default 1.0.")
	transPrior := fs.Float64("trans-prior", 0, "Dirichlet prior mass for transitions. Default 1.0.")
	seed := fs.Uint64("seed", 0, "RNG seed. Default 1.")
	corpusDir := fs.String("corpus-dir", "", "Directory of *.corpus utterance files.")
	resampleEvery := fs.Int("resample-every", 0, "Resample parameters every N utterances. Default 1.")
	monitorAddr := fs.String("monitor-addr", "", "Address for the training dashboard. Default :8090.")
	listDevices := fs.Bool("list-devices", false, "List audio capture devices and exit.")
	liveFrames := fs.Int("live-frames", 0, "Capture N frames from the default input device as one extra utterance.")
	corpusFEC := fs.Bool("corpus-fec", false, "Reed-Solomon-unwrap corpus files before parsing them.")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	cfg := defaults()
	if *configPath != "" {
		loaded, err := loadYAML(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = mergeNonZero(cfg, loaded)
	}

	if fs.Changed("codebook-size") {
		cfg.CodebookSize = *codebookSize
	}
	if fs.Changed("num-units") {
		cfg.NumUnits = *numUnits
	}
	if fs.Changed("num-unit-states") {
		cfg.NumUnitStates = *numUnitStates
	}
	if fs.Changed("obs-prior") {
		cfg.ObsPrior = *obsPrior
	}
	if fs.Changed("trans-prior") {
		cfg.TransPrior = *transPrior
	}
	if fs.Changed("seed") {
		cfg.Seed = *seed
	}
	if fs.Changed("corpus-dir") {
		cfg.CorpusDir = *corpusDir
	}
	if fs.Changed("resample-every") {
		cfg.ResampleEvery = *resampleEvery
	}
	if fs.Changed("monitor-addr") {
		cfg.MonitorAddr = *monitorAddr
	}
	if fs.Changed("live-frames") {
		cfg.LiveFrames = *liveFrames
	}
	if fs.Changed("corpus-fec") {
		cfg.CorpusFEC = *corpusFEC
	}
	cfg.ListDevices = *listDevices

	if cfg.ListDevices {
		return &cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the hmm package itself would otherwise
// reject at construction, surfacing the error earlier with a
// config-specific message.
func (c Config) Validate() error {
	if c.CodebookSize <= 0 {
		return fmt.Errorf("config: codebook_size must be positive")
	}
	if c.NumUnits <= 0 {
		return fmt.Errorf("config: num_units must be positive")
	}
	if c.CorpusDir == "" {
		return fmt.Errorf("config: corpus_dir is required")
	}
	if c.ResampleEvery <= 0 {
		return fmt.Errorf("config: resample_every must be positive")
	}
	return nil
}

func loadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeNonZero overlays every non-zero field of override onto base.
func mergeNonZero(base, override Config) Config {
	if override.CodebookSize != 0 {
		base.CodebookSize = override.CodebookSize
	}
	if override.NumUnits != 0 {
		base.NumUnits = override.NumUnits
	}
	if override.NumUnitStates != 0 {
		base.NumUnitStates = override.NumUnitStates
	}
	if override.ObsPrior != 0 {
		base.ObsPrior = override.ObsPrior
	}
	if override.TransPrior != 0 {
		base.TransPrior = override.TransPrior
	}
	if override.Seed != 0 {
		base.Seed = override.Seed
	}
	if override.CorpusDir != "" {
		base.CorpusDir = override.CorpusDir
	}
	if override.ResampleEvery != 0 {
		base.ResampleEvery = override.ResampleEvery
	}
	if override.MonitorAddr != "" {
		base.MonitorAddr = override.MonitorAddr
	}
	if override.LiveFrames != 0 {
		base.LiveFrames = override.LiveFrames
	}
	if override.CorpusFEC {
		base.CorpusFEC = true
	}
	return base
}
