package game

import (
	"fmt"
	"image/color"
	"strings"

	"shmup/internal/scene"
	"shmup/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// rect is a node resolved to screen space
type rect struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// sceneRects flattens the graph into draw order: roots in creation order,
// each parent before its children. Hidden nodes and their subtrees are
// skipped, as are nodes without size.
func sceneRects(g *scene.Graph) []rect {
	var out []rect
	var walk func(h scene.Handle)
	walk = func(h scene.Handle) {
		n := g.Node(h)
		if n == nil || n.Hidden {
			return
		}
		if n.Size.X > 0 && n.Size.Y > 0 {
			pos := g.WorldPos(h)
			out = append(out, rect{
				X:     pos.X - n.Size.X/2,
				Y:     pos.Y - n.Size.Y/2,
				W:     n.Size.X,
				H:     n.Size.Y,
				Color: n.DrawColor(),
			})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, h := range g.Roots() {
		walk(h)
	}
	return out
}

func drawScene(screen *ebiten.Image, g *scene.Graph) {
	for _, r := range sceneRects(g) {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), r.Color, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	best := 0
	if g.scores != nil {
		best = g.scores.Best()
	}
	ebitenutil.DebugPrint(screen, hudText(g.stage.Stats.GetCurrentMetrics(), g.stage.Hero().WeaponName(), best, ebiten.ActualTPS(), g.paused, g.stage.AutoFire))
}

func hudText(m monitoring.GameMetrics, weapon string, best int, tps float64, paused, autoFire bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SCORE %d  BEST %d\n", m.Score, best)
	fmt.Fprintf(&b, "KILLS %d  PARTS %d\n", m.EnemiesDestroyed, m.PartsDestroyed)
	fmt.Fprintf(&b, "HITS %d  BLOCKED %d  OFFSCREEN %d\n", m.Hits, m.ProtectedHits, m.OffScreenHits)
	fmt.Fprintf(&b, "ENEMIES %d  SHOTS %d  TPS %0.1f\n", m.ActiveEnemies, m.ActiveProjectiles, tps)
	fmt.Fprintf(&b, "WEAPON %s  POWER-UPS %d\n", strings.ToUpper(weapon), m.PowerUps)

	fire := "ON"
	if !autoFire {
		fire = "OFF"
	}
	fmt.Fprintf(&b, "[F] AUTO FIRE %s  [P] PAUSE  [ESC] QUIT", fire)
	if paused {
		b.WriteString("\n\nPAUSED")
	}
	return b.String()
}
