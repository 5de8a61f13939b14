package stage

import (
	"shmup/internal/collision"
	"shmup/internal/config"
	"shmup/internal/mathutil"
	"shmup/internal/scene"

	"golang.org/x/image/colornames"
)

// Hero is a turret sweeping along the bottom of the screen
type Hero struct {
	Node       scene.Handle
	speed      float64
	dir        float64
	weaponName string
	weapon     *config.WeaponConfig
	next       float64 // earliest time of the next shot
}

func newHero(g *scene.Graph, cfg *config.Config, w, h float64) *Hero {
	size := cfg.Hero.Size
	if size <= 0 {
		size = 24
	}
	pos := mathutil.V(w/2, h-cfg.Hero.YOffset)
	n := g.NewNode(scene.None, "hero", pos, mathutil.V(size, size),
		config.ColorByName(cfg.Hero.Color, colornames.Lightskyblue))

	return &Hero{
		Node:       n.Handle,
		speed:      cfg.Hero.SweepSpeed,
		dir:        1,
		weaponName: cfg.Hero.Weapon,
		weapon:     cfg.GetWeaponConfig(cfg.Hero.Weapon),
	}
}

// Weapon returns the hero's weapon
func (h *Hero) Weapon() *config.WeaponConfig {
	return h.weapon
}

// WeaponName returns the configured name of the hero's weapon
func (h *Hero) WeaponName() string {
	return h.weaponName
}

func (h *Hero) equip(name string, w *config.WeaponConfig) {
	h.weaponName = name
	h.weapon = w
}

// box returns the hero's collision box
func (h *Hero) box(g *scene.Graph) collision.BoundingBox {
	n := g.Node(h.Node)
	return collision.NewBoundingBox(n.Offset.X, n.Offset.Y, n.Size.X, n.Size.Y)
}

// Muzzle returns the point shots leave from
func (h *Hero) Muzzle(g *scene.Graph) mathutil.Vec2 {
	n := g.Node(h.Node)
	return mathutil.V(n.Offset.X, n.Offset.Y-n.Size.Y/2)
}

// update sweeps the hero horizontally, bouncing off the screen edges
func (h *Hero) update(dt float64, g *scene.Graph, screen collision.BoundingBox) {
	n := g.Node(h.Node)
	if n == nil || h.speed <= 0 {
		return
	}
	minX, _, maxX, _ := screen.GetBounds()
	half := n.Size.X / 2

	x := n.Offset.X + h.dir*h.speed*dt
	if x > maxX-half {
		x = maxX - half
		h.dir = -1
	} else if x < minX+half {
		x = minX + half
		h.dir = 1
	}
	n.Offset.X = x
}

func (h *Hero) ready(now float64) bool {
	return now >= h.next
}

func (h *Hero) fired(now float64) {
	h.next = now + h.weapon.FireDelay
}
