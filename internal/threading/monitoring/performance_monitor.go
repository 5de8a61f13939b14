package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame timing and simulation counters
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Simulation metrics
	enemiesSpawned   atomic.Uint64
	enemiesDestroyed atomic.Uint64
	partsDestroyed   atomic.Uint64
	hits             atomic.Uint64
	protectedHits    atomic.Uint64
	offScreenHits    atomic.Uint64
	missedParts      atomic.Uint64
	discards         atomic.Uint64
	powerUps         atomic.Uint64
	score            atomic.Int64

	activeEnemies     atomic.Int32
	activeProjectiles atomic.Int32

	// Statistics
	mutex        sync.RWMutex
	avgFrameTime float64
	startTime    time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(frameTime)
	count := ft.monitor.frameCount.Add(1)

	// Running average
	ft.monitor.mutex.Lock()
	ft.monitor.avgFrameTime += (float64(frameTime) - ft.monitor.avgFrameTime) / float64(count)
	ft.monitor.mutex.Unlock()
}

func (pm *PerformanceMonitor) EnemySpawned()   { pm.enemiesSpawned.Add(1) }
func (pm *PerformanceMonitor) PartDestroyed()  { pm.partsDestroyed.Add(1) }
func (pm *PerformanceMonitor) Hit()            { pm.hits.Add(1) }
func (pm *PerformanceMonitor) ProtectedHit()   { pm.protectedHits.Add(1) }
func (pm *PerformanceMonitor) OffScreenHit()   { pm.offScreenHits.Add(1) }
func (pm *PerformanceMonitor) MissedPart()     { pm.missedParts.Add(1) }
func (pm *PerformanceMonitor) ProjectileGone() { pm.discards.Add(1) }

// PowerUpCollected counts a pickup reaching the hero
func (pm *PerformanceMonitor) PowerUpCollected() {
	pm.powerUps.Add(1)
}

// EnemyDestroyed counts a kill and adds its score
func (pm *PerformanceMonitor) EnemyDestroyed(score int) {
	pm.enemiesDestroyed.Add(1)
	pm.score.Add(int64(score))
}

// UpdateActive stores the current population of the stage
func (pm *PerformanceMonitor) UpdateActive(enemies, projectiles int) {
	pm.activeEnemies.Store(int32(enemies))
	pm.activeProjectiles.Store(int32(projectiles))
}

// GameMetrics is a point-in-time copy of the counters
type GameMetrics struct {
	Frames            uint64
	FramesPerSecond   float64
	AvgFrameTime      time.Duration
	EnemiesSpawned    uint64
	EnemiesDestroyed  uint64
	PartsDestroyed    uint64
	Hits              uint64
	ProtectedHits     uint64
	OffScreenHits     uint64
	MissedParts       uint64
	Discards          uint64
	PowerUps          uint64
	Score             int64
	ActiveEnemies     int32
	ActiveProjectiles int32
}

// GetCurrentMetrics returns current metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() GameMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1000000000.0 / float64(frameTime) // Convert nanoseconds to FPS
	}

	return GameMetrics{
		Frames:            pm.frameCount.Load(),
		FramesPerSecond:   fps,
		AvgFrameTime:      time.Duration(avg),
		EnemiesSpawned:    pm.enemiesSpawned.Load(),
		EnemiesDestroyed:  pm.enemiesDestroyed.Load(),
		PartsDestroyed:    pm.partsDestroyed.Load(),
		Hits:              pm.hits.Load(),
		ProtectedHits:     pm.protectedHits.Load(),
		OffScreenHits:     pm.offScreenHits.Load(),
		MissedParts:       pm.missedParts.Load(),
		Discards:          pm.discards.Load(),
		PowerUps:          pm.powerUps.Load(),
		Score:             pm.score.Load(),
		ActiveEnemies:     pm.activeEnemies.Load(),
		ActiveProjectiles: pm.activeProjectiles.Load(),
	}
}

// GetDetailedStats returns metrics plus runtime figures keyed by name
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	m := pm.GetCurrentMetrics()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":     time.Since(pm.startTime).Seconds(),
		"frame_count":        m.Frames,
		"avg_frame_time_ms":  float64(m.AvgFrameTime) / 1000000,
		"current_fps":        m.FramesPerSecond,
		"enemies_spawned":    m.EnemiesSpawned,
		"enemies_destroyed":  m.EnemiesDestroyed,
		"parts_destroyed":    m.PartsDestroyed,
		"hits":               m.Hits,
		"protected_hits":     m.ProtectedHits,
		"off_screen_hits":    m.OffScreenHits,
		"missed_parts":       m.MissedParts,
		"discards":           m.Discards,
		"power_ups":          m.PowerUps,
		"score":              m.Score,
		"active_enemies":     m.ActiveEnemies,
		"active_projectiles": m.ActiveProjectiles,
		"memory_alloc_mb":    memStats.Alloc / 1024 / 1024,
		"goroutines":         runtime.NumGoroutine(),
	}
}

// Reset resets all counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.enemiesSpawned.Store(0)
	pm.enemiesDestroyed.Store(0)
	pm.partsDestroyed.Store(0)
	pm.hits.Store(0)
	pm.protectedHits.Store(0)
	pm.offScreenHits.Store(0)
	pm.missedParts.Store(0)
	pm.discards.Store(0)
	pm.powerUps.Store(0)
	pm.score.Store(0)
	pm.activeEnemies.Store(0)
	pm.activeProjectiles.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
