package gateway

import "sync"

// Metrics tracks in-memory counters for gateway activity. All counters are
// concurrency-safe and can be incremented from multiple goroutines.
type Metrics struct {
	mu sync.Mutex

	numTelemetryReceived uint64
	numSensorViewsBuilt  uint64
	numRadarReflections  uint64
	numLidarReflections  uint64
	numCameraFrames      uint64
	numFramesDropped     uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TelemetryReceived uint64
	SensorViewsBuilt  uint64
	RadarReflections  uint64
	LidarReflections  uint64
	CameraFrames      uint64
	FramesDropped     uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncTelemetryReceived() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numTelemetryReceived++
}

func (m *Metrics) IncSensorViewsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numSensorViewsBuilt++
}

func (m *Metrics) AddRadarReflections(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numRadarReflections += uint64(n)
}

func (m *Metrics) AddLidarReflections(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numLidarReflections += uint64(n)
}

func (m *Metrics) IncCameraFrames() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numCameraFrames++
}

func (m *Metrics) IncFramesDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numFramesDropped++
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		TelemetryReceived: m.numTelemetryReceived,
		SensorViewsBuilt:  m.numSensorViewsBuilt,
		RadarReflections:  m.numRadarReflections,
		LidarReflections:  m.numLidarReflections,
		CameraFrames:      m.numCameraFrames,
		FramesDropped:     m.numFramesDropped,
	}
}
