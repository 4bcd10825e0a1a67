package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/loop"
)

// PerformanceWindow shows frame times and per-system scheduler latency.
type PerformanceWindow struct {
	Scheduler *loop.Scheduler

	historyFrames int
	frames        *History
	latency       map[string]*History
}

func NewPerformanceWindow(scheduler *loop.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		Scheduler:     scheduler,
		historyFrames: historyFrames,
		frames:        NewHistory(historyFrames),
		latency:       make(map[string]*History),
	}
}

// Record samples the frame time and the scheduler's latest system timings.
func (pw *PerformanceWindow) Record(deltaTime float32) {
	pw.frames.Push(deltaTime * 1000.0)
	if pw.Scheduler == nil {
		return
	}
	for _, sys := range pw.Scheduler.GetStats().Systems {
		h, ok := pw.latency[sys.Name]
		if !ok {
			h = NewHistory(pw.historyFrames)
			pw.latency[sys.Name] = h
		}
		h.Push(millis(sys.Last))
	}
}

// Render draws the window. Call Record first for the current frame.
func (pw *PerformanceWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avgFrameTime := pw.frames.Average()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))
	imgui.Text(fmt.Sprintf("Max Frame Time: %.2f ms", pw.frames.Max()))

	if samples := pw.frames.Ordered(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	if pw.Scheduler == nil {
		imgui.End()
		return
	}
	stats := pw.Scheduler.GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d  Systems: %d", stats.Frames, len(stats.Systems)))

	if imgui.BeginTabBar("PerformanceTabs") {
		if imgui.BeginTabItem("Systems") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Last")
				imgui.TableSetupColumn("Avg")
				imgui.TableSetupColumn("Max")
				imgui.TableHeadersRow()

				for _, sys := range stats.Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(sys.Name)
					imgui.TableNextColumn()
					imgui.Text(sys.Last.String())
					imgui.TableNextColumn()
					imgui.Text(sys.Avg.String())
					imgui.TableNextColumn()
					imgui.Text(sys.Max.String())
				}
				imgui.EndTable()
			}
			imgui.EndTabItem()
		}

		if imgui.BeginTabItem("Latency") {
			names := make([]string, 0, len(pw.latency))
			for name := range pw.latency {
				names = append(names, name)
			}
			sort.Strings(names)

			if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, -1), 0) {
				implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
				for _, name := range names {
					samples := pw.latency[name].Ordered()
					if len(samples) == 0 {
						continue
					}
					implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
				}
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func millis(d time.Duration) float32 {
	return float32(d.Seconds() * 1000.0)
}

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
