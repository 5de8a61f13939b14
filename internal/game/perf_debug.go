package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (g *Game) maybeLogPerfDrop() {
	if !g.perfDebugEnabled {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return
	}

	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return
	}

	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return
	}

	g.perfLastPerfLog = now
	g.logPerfSnapshot(fps)
}

func (g *Game) logPerfSnapshot(fps float64) {
	stats := g.stage.Stats.GetDetailedStats()

	fmt.Printf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f target_tps=%d\n",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		ebiten.ActualTPS(),
		g.config.GetTPS(),
	)
	fmt.Printf(
		"[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms step_avg=%.2fms\n",
		float64(g.lastUpdateDuration.Microseconds())/1000.0,
		float64(g.lastDrawDuration.Microseconds())/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, g.lastUpdateDuration, g.lastDrawDuration),
		getPerfFloat(stats, "avg_frame_time_ms"),
	)
	fmt.Printf(
		"[PERF] enemies=%d projectiles=%d nodes=%d goroutines=%d mem_alloc=%dMB\n",
		getPerfInt(stats, "active_enemies"),
		getPerfInt(stats, "active_projectiles"),
		g.stage.Graph.Len(),
		getPerfInt(stats, "goroutines"),
		getPerfUint(stats, "memory_alloc_mb"),
	)
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case uint64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case int:
			return uint64(v)
		}
	}
	return 0
}
