package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Workers   int
	InputRate float64
	TickRate  int
	Engine    tetris.Config

	// Results
	Results        []WorkerResult
	TotalFrames    int64
	TotalGames     int
	TotalPieces    int64
	TotalRows      int64
	Mismatches     int
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
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
}

// Add folds a worker's results into the totals.
func (r *Report) Add(result WorkerResult) {
	r.Results = append(r.Results, result)
	r.TotalFrames += result.Frames
	r.TotalGames += result.Games
	r.TotalPieces += result.Pieces
	r.TotalRows += result.Rows
	r.Mismatches += result.Mismatches
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, result.UpdateTime.Samples...)
}

// SimulatedTime is the game time covered by all workers together.
func (r *Report) SimulatedTime() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	seconds := float64(r.TotalFrames) / float64(r.TickRate)
	return time.Duration(seconds * float64(time.Second))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Workers:** {{.Workers}}
- **Board:** {{.Engine.Width}}x{{.Engine.Height}}, spawn ({{.Engine.Spawn.X}}, {{.Engine.Spawn.Y}})
- **Step / Lock Delay:** {{.Engine.StepDelay}} / {{.Engine.LockDelay}}
- **Tick Rate:** {{.TickRate}} Hz
- **Input Rate:** {{printf "%.2f" .InputRate}} per frame

## Gameplay Results
| Worker | Seed | Games | Frames | Pieces | Rows | Mismatches |
|---|---|---|---|---|---|---|
{{- range .Results}}
| {{.Worker}} | {{.Seed}} | {{.Games}} | {{.Frames}} | {{.Pieces}} | {{.Rows}} | {{.Mismatches}} |
{{- end}}

- **Total Games:** {{.TotalGames}}
- **Total Pieces Locked:** {{.TotalPieces}}
- **Total Rows Cleared:** {{.TotalRows}}
- **Sink Mismatches:** {{.Mismatches}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Simulated Game Time:** {{.SimulatedTime}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{if .Results}}{{with index .Results 0}}
### System Timings (worker {{.Worker}})
| System | Runs | Avg | Max | Share |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.Runs}} | {{.Avg}} | {{.Max}} | {{pct .Share}} |
{{- end}}
{{end}}{{end}}
## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc | mb}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc | mb}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys | mb}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
