package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/kinetic/sim"
)

type Report struct {
	// Configuration
	Scenario  string
	Duration  time.Duration
	Entities  int
	Layers    int
	FixedStep time.Duration

	// Results
	TotalTime      time.Duration
	UpdateTime     Stats
	World          sim.WorldStats
	Census         sim.Snapshot
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[len(sorted)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Stress Test Report

## Test Configuration
- **Scenario:** {{.Scenario}}
- **Run Duration:** {{.Duration}}
- **Entities:** {{.Entities}}
- **Random Layers:** {{.Layers}}
- **Tick Length:** {{if .FixedStep}}{{.FixedStep}} (fixed){{else}}wall time{{end}}

## Performance Results
- **Total Ticks:** {{.World.Ticks}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{printf "%.2fs" .World.SimulatedTime}}
- **Resolved Collisions:** {{.World.Collisions}} ({{perTick .World.Collisions .World.Ticks}} per tick)
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Census
- **Entities:** {{.Census.Entities}}
- **Modules:** {{.Census.Modules}}
{{- range $kind := .Census.Kinds}}
  - {{$kind}}: {{index $.Census.ModulesByKind $kind}}
{{- end}}
- **Layers:**
{{- range .Census.Layers}}
  - layer {{.Layer}}: {{.Modules}} modules
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} B
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} B
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"perTick": func(n uint64, ticks int64) string {
			if ticks == 0 {
				return "0"
			}
			return fmt.Sprintf("%.1f", float64(n)/float64(ticks))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
