package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/i5heu/GoRingQueue/internal/testbench"
)

// Workload is an alias for testbench.Workload. This allows other programs to
// import the bench configuration without pulling in the testbench package.
type Workload = testbench.Workload

// Config drives one cmd/bench session.
type Config struct {
	// Capacity of every queue under test.
	Capacity int `yaml:"capacity"`
	// Iterations per (cpu, workload) pair.
	Iterations int `yaml:"iterations"`
	// Duration of each timed run.
	Duration time.Duration `yaml:"duration"`
	// CPUs lists GOMAXPROCS values to test. Empty means the common values
	// up to runtime.NumCPU().
	CPUs      []int      `yaml:"cpus"`
	Workloads []Workload `yaml:"workloads"`
	// JSONFile is where sessions are appended when JSON export is on.
	JSONFile string `yaml:"json_file"`
	// SQLiteFile, if set, also stores sessions in a SQLite database.
	SQLiteFile string `yaml:"sqlite_file"`
}

func Default() Config {
	return Config{
		Capacity:   1024,
		Iterations: 5,
		Duration:   5 * time.Second,
		Workloads: []Workload{
			{NumProducers: 1, NumConsumers: 1},
			{NumProducers: 2, NumConsumers: 2},
			{NumProducers: 10, NumConsumers: 10},
		},
		JSONFile: "test-results.json",
	}
}

// Load reads a YAML file on top of Default. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if c.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %s", c.Duration))
	}
	for _, cpu := range c.CPUs {
		if cpu <= 0 {
			errs = append(errs, fmt.Errorf("cpu count must be positive, got %d", cpu))
		}
	}
	if len(c.Workloads) == 0 {
		errs = append(errs, errors.New("at least one workload is required"))
	}
	for i, wl := range c.Workloads {
		if wl.NumProducers < 0 || wl.NumConsumers < 0 || wl.NumProducers+wl.NumConsumers == 0 {
			errs = append(errs, fmt.Errorf("workload %d: need a positive number of producers or consumers", i))
		}
	}
	return errors.Join(errs...)
}
