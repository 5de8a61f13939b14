package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"shmup/internal/config"
	"shmup/internal/enemy"
	"shmup/internal/event"
	"shmup/internal/stage"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"
)

// Game hosts a stage in an ebiten window
type Game struct {
	config *config.Config
	stage  *stage.Stage
	sounds *SoundBoard
	scores *HighScoreStore

	background color.RGBA
	dt         float64
	paused     bool
	closed     bool

	sessionStartTime time.Time

	perfDebugEnabled   bool
	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGame creates a game running enemies from defs. scores may be nil.
func NewGame(cfg *config.Config, defs *enemy.EnemyYAMLConfig, seed int64, scores *HighScoreStore) (*Game, error) {
	st, err := stage.New(cfg, defs, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	g := &Game{
		config:           cfg,
		stage:            st,
		scores:           scores,
		background:       config.ColorByName(cfg.Display.Background, colornames.Black),
		dt:               1 / float64(cfg.GetTPS()),
		sessionStartTime: time.Now(),
	}

	if cfg.Audio.Enabled {
		g.sounds = NewSoundBoard(cfg.Audio)
		st.Events.Subscribe(event.PartDestroyed, event.ListenerFunc(func(event.Event) {
			g.sounds.Play(SoundPartDestroyed)
		}))
		st.Events.Subscribe(event.EnemyDestroyed, event.ListenerFunc(func(event.Event) {
			g.sounds.Play(SoundEnemyDestroyed)
		}))
	}

	return g, nil
}

// Stage returns the simulation the game is hosting
func (g *Game) Stage() *stage.Stage {
	return g.stage
}

// EnablePerfDebug turns low-FPS logging on or off
func (g *Game) EnablePerfDebug(enabled bool) {
	g.perfDebugEnabled = enabled
}

// Update advances the simulation by one tick
func (g *Game) Update() error {
	start := time.Now()
	defer func() { g.lastUpdateDuration = time.Since(start) }()

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.stage.AutoFire = !g.stage.AutoFire
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.perfDebugEnabled = !g.perfDebugEnabled
	}

	if !g.paused {
		g.stage.Step(g.dt)
	}
	g.maybeLogPerfDrop()
	return nil
}

// Draw renders the scene and the HUD
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() { g.lastDrawDuration = time.Since(start) }()

	screen.Fill(g.background)
	drawScene(screen, g.stage.Graph)
	g.drawHUD(screen)
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// Close records the session score and stops the stage. Safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true

	if g.scores != nil {
		m := g.stage.Stats.GetCurrentMetrics()
		entry := HighScoreEntry{
			Score:          int(m.Score),
			Kills:          m.EnemiesDestroyed,
			PartsDestroyed: m.PartsDestroyed,
			PlayTime:       time.Since(g.sessionStartTime).Round(time.Second).String(),
			Date:           time.Now(),
		}
		if rank, err := g.scores.Record(entry); err != nil {
			log.Printf("Warning: failed to save high score: %v", err)
		} else if rank > 0 {
			log.Printf("New high score %d (rank %d)", entry.Score, rank)
		}
	}

	g.stage.Close()
}
