package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/i5heu/GoRingQueue/internal/report"
	"github.com/i5heu/GoRingQueue/internal/resultstore"
	"github.com/i5heu/GoRingQueue/internal/testbench"
	"github.com/i5heu/GoRingQueue/pkg/config"
	"github.com/i5heu/GoRingQueue/pkg/ringqueue"
)

// Common CPU/vCPU settings tested when no explicit list is given.
var commonCPUs = []int{1, 2, 3, 4, 6, 8, 12, 16, 32, 48, 56, 64, 96, 128, 192, 256, 384, 512}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("bench failed")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bench"
	app.Usage = "Compare the ring queue against baseline bounded queues"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML bench configuration; flags override its values",
			EnvVars: []string{"BENCH_CONFIG"},
		},
		&cli.IntFlag{
			Name:  "iter",
			Value: config.Default().Iterations,
			Usage: "Number of test iterations per concurrency setting",
		},
		&cli.IntFlag{
			Name:  "cpu",
			Usage: "If non-zero, test only that GOMAXPROCS value; if 0, test common CPU/vCPU values up to runtime.NumCPU()",
		},
		&cli.IntFlag{
			Name:  "capacity",
			Value: config.Default().Capacity,
			Usage: "Capacity of every queue under test",
		},
		&cli.DurationFlag{
			Name:  "duration",
			Value: config.Default().Duration,
			Usage: "Duration of each timed run",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Append results as JSON to --jsonfile",
		},
		&cli.StringFlag{
			Name:  "jsonfile",
			Value: config.Default().JSONFile,
			Usage: "Path to the JSON results history",
		},
		&cli.StringFlag{
			Name:    "sqlite",
			Usage:   "Also store results in this SQLite database",
			EnvVars: []string{"BENCH_SQLITE"},
		},
		&cli.BoolFlag{
			Name:  "markdown-table",
			Usage: "Output a markdown table of the last session in --jsonfile and exit",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Display a progress bar with ETA",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging, including ring queue rejection diagnostics",
		},
	}
	app.Before = func(c *cli.Context) error {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
			ringqueue.SetDiagnostics(log.StandardLogger())
		}
		return nil
	}
	app.Action = run
	return app
}

// loadConfig merges the optional YAML file with explicitly set flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("iter") {
		cfg.Iterations = c.Int("iter")
	}
	if c.IsSet("capacity") {
		cfg.Capacity = c.Int("capacity")
	}
	if c.IsSet("duration") {
		cfg.Duration = c.Duration("duration")
	}
	if c.IsSet("cpu") && c.Int("cpu") > 0 {
		cfg.CPUs = []int{c.Int("cpu")}
	}
	if c.IsSet("jsonfile") {
		cfg.JSONFile = c.String("jsonfile")
	}
	if c.IsSet("sqlite") {
		cfg.SQLiteFile = c.String("sqlite")
	}
	return cfg, cfg.Validate()
}

// cpuSettings clamps the configured GOMAXPROCS values to the machine.
func cpuSettings(requested []int, trueCPUs int) []int {
	var out []int
	if len(requested) > 0 {
		for _, v := range requested {
			if v > trueCPUs {
				v = trueCPUs
			}
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
		return out
	}
	for _, v := range commonCPUs {
		if v <= trueCPUs {
			out = append(out, v)
		}
	}
	return out
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Bool("markdown-table") {
		return printMarkdownTable(cfg.JSONFile)
	}

	trueCPUs := runtime.NumCPU()
	cpus := cpuSettings(cfg.CPUs, trueCPUs)
	impls := getImplementations()

	var bar *progressbar.ProgressBar
	if c.Bool("progress") {
		total := len(cpus) * len(cfg.Workloads) * cfg.Iterations * len(impls)
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Progress"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	var sessions []report.FullReport
	for _, n := range cpus {
		runtime.GOMAXPROCS(n)
		sysInfo := gatherSystemInfo()
		sysInfo.NumCPU = n
		sysInfo.TrueCPU = trueCPUs
		sysInfo.SimulatedCPUCount = n

		session := report.NewSession(sysInfo)
		logger := log.WithFields(log.Fields{"session": session.SessionID, "gomaxprocs": n})
		logger.Info("starting session")

		for _, wl := range cfg.Workloads {
			for iteration := 1; iteration <= cfg.Iterations; iteration++ {
				for _, impl := range impls {
					res, err := runOne(impl, cfg, wl)
					if err != nil {
						return fmt.Errorf("%s: %w", impl.name, err)
					}
					session.Benchmarks = append(session.Benchmarks, res)

					logger.WithFields(log.Fields{
						"impl":       impl.name,
						"producers":  wl.NumProducers,
						"consumers":  wl.NumConsumers,
						"iteration":  iteration,
						"produced":   res.NumMessages,
						"consumed":   res.NumMessagesConsumed,
						"rejected":   res.NumRejected,
						"throughput": fmt.Sprintf("%.0f msg/s", res.Throughput),
					}).Info("run finished")

					if bar != nil {
						_ = bar.Add(1)
					}
				}
			}
		}
		sessions = append(sessions, session)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return export(c.Context, c.Bool("json"), cfg, sessions)
}

func runOne(impl Implementation[int, benchQueue], cfg config.Config, wl config.Workload) (report.BenchmarkResult, error) {
	runtime.GC()
	q, err := impl.newQueue(cfg.Capacity)
	if err != nil {
		return report.BenchmarkResult{}, err
	}
	time.Sleep(250 * time.Millisecond)

	var mu sync.Mutex
	res := testbench.RunTimedTest(q, &mu, wl, cfg.Duration, func(i int) int { return i })

	return report.BenchmarkResult{
		Implementation:      impl.name,
		Capacity:            cfg.Capacity,
		NumProducers:        wl.NumProducers,
		NumConsumers:        wl.NumConsumers,
		NumMessages:         res.Produced,
		NumMessagesConsumed: res.Consumed,
		NumRejected:         res.Rejected,
		TestDuration:        cfg.Duration.String(),
		ActualElapsed:       res.Elapsed.String(),
		Throughput:          float64(res.Consumed) / res.Elapsed.Seconds(),
		Timestamp:           time.Now().Unix(),
		GoVersion:           runtime.Version(),
	}, nil
}

func export(ctx context.Context, toJSON bool, cfg config.Config, sessions []report.FullReport) error {
	if toJSON {
		if err := report.Append(cfg.JSONFile, sessions...); err != nil {
			return err
		}
		log.WithField("file", cfg.JSONFile).Info("wrote results")
	}

	if cfg.SQLiteFile == "" {
		return nil
	}
	st, err := resultstore.Open(cfg.SQLiteFile)
	if err != nil {
		return err
	}
	var errs []error
	for _, s := range sessions {
		if err := st.SaveSession(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, st.Close())
	if err := errors.Join(errs...); err != nil {
		return err
	}
	log.WithField("file", cfg.SQLiteFile).Info("stored results")
	return nil
}

func printMarkdownTable(jsonFile string) error {
	sessions, err := report.Load(jsonFile)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %q", jsonFile)
	}
	meta := make(map[string]report.Meta)
	for _, impl := range getImplementations() {
		meta[impl.name] = report.Meta{PkgName: impl.pkgName, Description: impl.description, Features: impl.features}
	}
	return report.MarkdownTable(os.Stdout, sessions[len(sessions)-1], meta)
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() report.SystemInfo {
	info := report.SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	} else if err != nil {
		log.WithError(err).Debug("cpu info unavailable")
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	} else {
		log.WithError(err).Debug("memory info unavailable")
	}
	return info
}
