package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation      string  `json:"implementation"`
	Capacity            int     `json:"capacity"`
	NumProducers        int     `json:"num_producers"`
	NumConsumers        int     `json:"num_consumers"`
	NumMessages         int64   `json:"num_messages"`          // produced count
	NumMessagesConsumed int64   `json:"num_messages_consumed"` // consumed count
	NumRejected         int64   `json:"num_rejected"`          // enqueues refused while full
	TestDuration        string  `json:"test_duration"`         // e.g. "5s"
	ActualElapsed       string  `json:"actual_elapsed"`        // measured time
	Throughput          float64 `json:"throughput_msgs_sec"`   // based on consumed count
	Timestamp           int64   `json:"timestamp"`
	GoVersion           string  `json:"go_version"`
}

// NsPerMsg returns the measured time per consumed message, or false if the
// run consumed nothing or its elapsed time cannot be parsed.
func (b BenchmarkResult) NsPerMsg() (float64, bool) {
	dur, err := time.ParseDuration(b.ActualElapsed)
	if err != nil || b.NumMessagesConsumed == 0 {
		return 0, false
	}
	return float64(dur.Nanoseconds()) / float64(b.NumMessagesConsumed), true
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU            int     `json:"num_cpu"`
	TrueCPU           int     `json:"true_cpu,omitempty"`
	SimulatedCPUCount int     `json:"simulated_cpu_count,omitempty"`
	CPUModel          string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz       float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH            string  `json:"go_arch"`
	TotalMemory       uint64  `json:"total_memory_bytes,omitempty"`
}

// CPUs returns the GOMAXPROCS value the session ran with.
func (s SystemInfo) CPUs() int {
	if s.SimulatedCPUCount != 0 {
		return s.SimulatedCPUCount
	}
	return s.NumCPU
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionID   string            `json:"session_id"`
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// NewSession starts an empty report stamped with a fresh id and time.
func NewSession(sys SystemInfo) FullReport {
	return FullReport{
		SessionID:   uuid.NewString(),
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  sys,
	}
}

// Load reads the session history from path. A missing file is an empty history.
func Load(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return sessions, nil
}

// Append adds sessions to the history stored at path.
func Append(path string, sessions ...FullReport) error {
	previous, err := Load(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(append(previous, sessions...), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// Meta describes an implementation in the summary table.
type Meta struct {
	PkgName     string
	Description string
	Features    []string
}

// MarkdownTable writes a throughput summary of the session, fastest first.
func MarkdownTable(w io.Writer, session FullReport, meta map[string]Meta) error {
	type row struct {
		impl, pkg, features string
		workload            string
		throughput          float64
	}
	rows := make([]row, 0, len(session.Benchmarks))
	var names []string
	for _, b := range session.Benchmarks {
		m := meta[b.Implementation]
		if m.Description != "" && !slices.Contains(names, b.Implementation) {
			names = append(names, b.Implementation)
		}
		rows = append(rows, row{
			impl:       b.Implementation,
			pkg:        m.PkgName,
			features:   strings.Join(m.Features, ", "),
			workload:   fmt.Sprintf("%dP/%dC", b.NumProducers, b.NumConsumers),
			throughput: b.Throughput,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].throughput > rows[j].throughput
	})

	var sb strings.Builder
	sb.WriteString("## Last Session Benchmark Summary\n\n")
	sb.WriteString("| Implementation           | Package         | Features                    | Workload | Throughput (msgs/sec) |\n")
	sb.WriteString("|--------------------------|-----------------|-----------------------------|----------|-----------------------|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %-24s | %-15s | %-27s | %-8s | %21.0f |\n",
			r.impl, r.pkg, r.features, r.workload, r.throughput)
	}
	if len(names) > 0 {
		sort.Strings(names)
		sb.WriteString("\n### Implementations\n\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "- **%s**: %s\n", name, meta[name].Description)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
