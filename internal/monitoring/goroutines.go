// Package monitoring watches process-level health while a batch runs.
//
// A collaborator call that outlives its timeout leaves its guard goroutine
// running until the call returns, so long parallel batches against
// misbehaving bots can accumulate goroutines. The monitor samples the count
// on a ticker and warns when it climbs past a threshold.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor samples runtime.NumGoroutine and tracks its growth
// relative to the count observed when monitoring started.
type GoroutineMonitor struct {
	mu             sync.RWMutex
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	stopChan       chan struct{}
	logger         zerolog.Logger
}

// NewGoroutineMonitor returns a monitor that samples every interval and
// warns once per cooldown window when the goroutine count exceeds threshold.
func NewGoroutineMonitor(interval time.Duration, threshold int, logger zerolog.Logger) *GoroutineMonitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if threshold <= 0 {
		threshold = 1000
	}
	return &GoroutineMonitor{
		checkInterval:  interval,
		alertThreshold: threshold,
		alertCooldown:  time.Minute,
		stopChan:       make(chan struct{}),
		logger:         logger.With().Str("component", "goroutine_monitor").Logger(),
	}
}

// Start records the baseline and begins sampling in the background.
func (gm *GoroutineMonitor) Start() {
	baseline := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.baseline = baseline
	gm.current = baseline
	gm.peak = baseline
	gm.mu.Unlock()

	go gm.monitor()
	gm.logger.Info().
		Int("baseline", baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop ends sampling. Metrics remain readable afterwards.
func (gm *GoroutineMonitor) Stop() {
	close(gm.stopChan)
}

func (gm *GoroutineMonitor) monitor() {
	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.checkGoroutines()
		case <-gm.stopChan:
			return
		}
	}
}

func (gm *GoroutineMonitor) checkGoroutines() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	growth := current - gm.baseline

	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("growth", growth).
		Msg("Goroutine sample")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Int("growth", growth).
			Msg("High goroutine count, possible stuck strategy calls")
	}
}

// GoroutineMetrics is a point-in-time view of the monitored counts.
type GoroutineMetrics struct {
	Current  int `json:"current"`
	Baseline int `json:"baseline"`
	Peak     int `json:"peak"`
	Growth   int `json:"growth"`
}

// Metrics returns the counts as of the most recent sample.
func (gm *GoroutineMonitor) Metrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:  gm.current,
		Baseline: gm.baseline,
		Peak:     gm.peak,
		Growth:   gm.current - gm.baseline,
	}
}
