package main

import (
	"bytes"
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"text/tabwriter"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive"
	"github.com/wippyai/octet/encode"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure encode and decode for every scenario across codecs",
		RunE: func(*cobra.Command, []string) error {
			return runBench(benchConfig{
				samples:  viper.GetInt("samples"),
				filter:   viper.GetString("filter"),
				csvPath:  viper.GetString("csv"),
				promPath: viper.GetString("prom"),
			})
		},
	}
	cmd.Flags().Int("samples", 20000, "timing samples per measurement")
	cmd.Flags().String("filter", "", "run only scenarios whose name contains this substring")
	cmd.Flags().String("csv", "", "write rows as CSV to this file (- for stdout)")
	cmd.Flags().String("prom", "", "write latency summaries in Prometheus text form (- for stdout)")
	return cmd
}

type benchConfig struct {
	samples  int
	filter   string
	csvPath  string
	promPath string
}

type row struct {
	scenario string
	codec    string
	op       string
	wire     int
	nsPerOp  int64
	bPerOp   int64
	allocs   int64
	p50      time.Duration
	p90      time.Duration
	p99      time.Duration
}

// A runSet is one codec's pair of closures over a scenario's sample value.
// unmarshal always consumes bytes produced by the same codec.
type runSet struct {
	codec     string
	wire      int
	marshal   func() error
	unmarshal func() error
}

func runBench(cfg benchConfig) error {
	var rows []row
	for _, s := range scenarios() {
		if cfg.filter != "" && !strings.Contains(s.name, cfg.filter) {
			continue
		}
		runs, err := buildRuns(s)
		if err != nil {
			return err
		}
		for _, r := range runs {
			ops := []struct {
				name string
				fn   func() error
			}{
				{"encode", r.marshal},
				{"decode", r.unmarshal},
			}
			for _, op := range ops {
				m, err := measure(s.name, r.codec, op.name, r.wire, cfg.samples, op.fn)
				if err != nil {
					return err
				}
				rows = append(rows, m)
			}
		}
	}

	slices.SortFunc(rows, func(a, b row) int {
		if c := strings.Compare(a.scenario, b.scenario); c != 0 {
			return c
		}
		if c := strings.Compare(a.codec, b.codec); c != 0 {
			return c
		}
		return strings.Compare(b.op, a.op) // encode before decode
	})

	if term.IsTerminal(int(os.Stdout.Fd())) {
		renderTable(rows)
	} else {
		renderPlain(rows)
	}

	if cfg.csvPath != "" {
		if err := writeCSV(rows, cfg.csvPath); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	if cfg.promPath != "" {
		err := withOut(cfg.promPath, func(w io.Writer) error {
			metrics.WritePrometheus(w, false)
			return nil
		})
		if err != nil {
			return fmt.Errorf("prom: %w", err)
		}
	}
	return nil
}

// buildRuns prepares the four codecs for one scenario. The hand-written and
// derived encoders must agree byte for byte before anything is measured.
func buildRuns(s scenario) ([]runSet, error) {
	handData, err := marshalHand(s)
	if err != nil {
		return nil, fmt.Errorf("%s: hand encode: %w", s.name, err)
	}
	if len(handData) != s.size {
		return nil, fmt.Errorf("%s: hand encoding is %d bytes, scenario declares %d",
			s.name, len(handData), s.size)
	}
	derData, err := derive.Marshal(s.value)
	if err != nil {
		return nil, fmt.Errorf("%s: derive encode: %w", s.name, err)
	}
	if !bytes.Equal(handData, derData) {
		return nil, fmt.Errorf("%s: hand and derived encodings disagree\n  hand   %x\n  derive %x",
			s.name, handData, derData)
	}
	gobData, err := gobMarshal(s.value)
	if err != nil {
		return nil, fmt.Errorf("%s: gob encode: %w", s.name, err)
	}
	jsonData, err := json.Marshal(s.value)
	if err != nil {
		return nil, fmt.Errorf("%s: json encode: %w", s.name, err)
	}

	return []runSet{
		{
			codec: "octet/hand",
			wire:  len(handData),
			marshal: func() error {
				o := encode.NewOutput(make([]byte, s.size))
				return s.encode(o)
			},
			unmarshal: func() error {
				return s.decode(decode.NewInput(handData))
			},
		},
		{
			codec: "octet/derive",
			wire:  len(derData),
			marshal: func() error {
				_, err := derive.Marshal(s.value)
				return err
			},
			unmarshal: func() error {
				return derive.Unmarshal(derData, s.fresh())
			},
		},
		{
			codec: "encoding/gob",
			wire:  len(gobData),
			marshal: func() error {
				_, err := gobMarshal(s.value)
				return err
			},
			unmarshal: func() error {
				return gob.NewDecoder(bytes.NewReader(gobData)).Decode(s.fresh())
			},
		},
		{
			codec: "encoding/json",
			wire:  len(jsonData),
			marshal: func() error {
				_, err := json.Marshal(s.value)
				return err
			},
			unmarshal: func() error {
				return json.Unmarshal(jsonData, s.fresh())
			},
		},
	}, nil
}

func marshalHand(s scenario) ([]byte, error) {
	o := encode.NewOutput(make([]byte, s.size))
	if err := s.encode(o); err != nil {
		return nil, err
	}
	return o.Bytes(), nil
}

func gobMarshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// measure runs fn through testing.Benchmark for throughput and allocation
// counts, then times individual calls for the quantile columns. The same
// samples feed a per-series summary so --prom exports what the table shows.
func measure(scn, codec, op string, wire, samples int, fn func() error) (row, error) {
	if err := fn(); err != nil {
		return row{}, fmt.Errorf("%s/%s %s: %w", scn, codec, op, err)
	}

	res := testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		for range b.N {
			if err := fn(); err != nil {
				b.Fatal(err)
			}
		}
	})
	if res.N == 0 {
		return row{}, fmt.Errorf("%s/%s %s: benchmark failed", scn, codec, op)
	}

	sum := metrics.GetOrCreateSummary(fmt.Sprintf(
		`octbench_latency_seconds{scenario=%q,codec=%q,op=%q}`, scn, codec, op))
	lat := make([]time.Duration, 0, samples)
	for range samples {
		t0 := time.Now()
		err := fn()
		d := time.Since(t0)
		if err != nil {
			return row{}, fmt.Errorf("%s/%s %s: %w", scn, codec, op, err)
		}
		lat = append(lat, d)
		sum.Update(d.Seconds())
	}
	slices.Sort(lat)

	return row{
		scenario: scn,
		codec:    codec,
		op:       op,
		wire:     wire,
		nsPerOp:  res.NsPerOp(),
		bPerOp:   res.AllocedBytesPerOp(),
		allocs:   res.AllocsPerOp(),
		p50:      quantile(lat, 0.50),
		p90:      quantile(lat, 0.90),
		p99:      quantile(lat, 0.99),
	}, nil
}

func quantile(sorted []time.Duration, phi float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(phi*float64(len(sorted)-1) + 0.5)
	return sorted[i]
}

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

func renderTable(rows []row) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(rowHeader()...)
	for _, r := range rows {
		t.Row(r.strings()...)
	}
	fmt.Println(t)
}

func renderPlain(rows []row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(rowHeader(), "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r.strings(), "\t"))
	}
	w.Flush()
}

func rowHeader() []string {
	return []string{"SCENARIO", "CODEC", "OP", "WIRE", "NS/OP", "B/OP", "ALLOCS", "P50", "P90", "P99"}
}

func (r row) strings() []string {
	return []string{
		r.scenario,
		r.codec,
		r.op,
		strconv.Itoa(r.wire),
		strconv.FormatInt(r.nsPerOp, 10),
		strconv.FormatInt(r.bPerOp, 10),
		strconv.FormatInt(r.allocs, 10),
		r.p50.String(),
		r.p90.String(),
		r.p99.String(),
	}
}

func writeCSV(rows []row, path string) error {
	return withOut(path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write([]string{
			"scenario", "codec", "op", "wire_bytes",
			"ns_per_op", "bytes_per_op", "allocs_per_op",
			"p50_ns", "p90_ns", "p99_ns",
		}); err != nil {
			return err
		}
		for _, r := range rows {
			err := w.Write([]string{
				r.scenario, r.codec, r.op,
				strconv.Itoa(r.wire),
				strconv.FormatInt(r.nsPerOp, 10),
				strconv.FormatInt(r.bPerOp, 10),
				strconv.FormatInt(r.allocs, 10),
				strconv.FormatInt(r.p50.Nanoseconds(), 10),
				strconv.FormatInt(r.p90.Nanoseconds(), 10),
				strconv.FormatInt(r.p99.Nanoseconds(), 10),
			})
			if err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

func withOut(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
