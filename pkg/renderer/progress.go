package renderer

import (
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	progressRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathtracer_render_progress_ratio",
		Help: "Fraction of image columns rendered so far, in [0,1].",
	})
	minIntensityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathtracer_render_intensity_min",
		Help: "Minimum linear channel intensity observed so far.",
	})
	maxIntensityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathtracer_render_intensity_max",
		Help: "Maximum linear channel intensity observed so far.",
	})
)

// Broadcaster pushes a progress frame to whatever live-progress transport is
// attached (a websocket server, typically). Render works without one.
type Broadcaster interface {
	Broadcast(frame []byte)
}

// Frame is the JSON shape pushed to a Broadcaster after each column.
type Frame struct {
	ColumnsDone  int     `json:"columnsDone"`
	TotalColumns int     `json:"totalColumns"`
	MinIntensity float64 `json:"minIntensity"`
	MaxIntensity float64 `json:"maxIntensity"`
}

// Progress is the mutex-guarded shared state updated once per completed
// column: a counter toward totalColumns, and the running min/max linear
// intensity across every pixel rendered so far.
type Progress struct {
	mu           sync.Mutex
	columnsDone  int
	totalColumns int
	minIntensity float64
	maxIntensity float64
	broadcaster  Broadcaster
}

// NewProgress initializes a tracker for a render of totalColumns columns.
func NewProgress(totalColumns int, broadcaster Broadcaster) *Progress {
	return &Progress{
		totalColumns: totalColumns,
		minIntensity: 0,
		maxIntensity: 0,
		broadcaster:  broadcaster,
	}
}

// CompleteColumn records one finished column and the min/max linear
// intensity observed while rendering it, then mirrors the updated totals
// into the Prometheus gauges and, if attached, the live broadcaster.
func (p *Progress) CompleteColumn(columnMin, columnMax float64) {
	p.mu.Lock()
	p.columnsDone++
	if p.columnsDone == 1 || columnMin < p.minIntensity {
		p.minIntensity = columnMin
	}
	if columnMax > p.maxIntensity {
		p.maxIntensity = columnMax
	}
	frame := Frame{
		ColumnsDone:  p.columnsDone,
		TotalColumns: p.totalColumns,
		MinIntensity: p.minIntensity,
		MaxIntensity: p.maxIntensity,
	}
	ratio := float64(p.columnsDone) / float64(p.totalColumns)
	p.mu.Unlock()

	progressRatio.Set(ratio)
	minIntensityGauge.Set(frame.MinIntensity)
	maxIntensityGauge.Set(frame.MaxIntensity)

	if p.broadcaster != nil {
		if data, err := json.Marshal(frame); err == nil {
			p.broadcaster.Broadcast(data)
		}
	}
}

// Snapshot returns the current progress state under lock.
func (p *Progress) Snapshot() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Frame{
		ColumnsDone:  p.columnsDone,
		TotalColumns: p.totalColumns,
		MinIntensity: p.minIntensity,
		MaxIntensity: p.maxIntensity,
	}
}
