package stage

import (
	"image/color"

	"shmup/internal/collision"
	"shmup/internal/config"
	"shmup/internal/mathutil"
	"shmup/internal/scene"
)

const projectileOwner = "hero"

// Projectile is a hero shot travelling in a straight line
type Projectile struct {
	Handle   scene.Handle
	Damage   float64
	Velocity mathutil.Vec2
}

// FireProjectile launches a shot of weapon w from pos, straight up
func (s *Stage) FireProjectile(pos mathutil.Vec2, w *config.WeaponConfig) *Projectile {
	size := w.ProjectileSize
	if size <= 0 {
		size = 4
	}
	c := config.ColorByName(w.Color, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	n := s.Graph.NewNode(scene.None, "projectile", pos, mathutil.V(size, size*2), c)

	p := &Projectile{
		Handle:   n.Handle,
		Damage:   w.DamageOnHit,
		Velocity: mathutil.V(0, -w.ProjectileSpeed),
	}
	s.projectiles[p.Handle] = p
	s.shots = append(s.shots, p.Handle)
	s.detector.Register(collision.Collider{
		Handle: p.Handle,
		Owner:  projectileOwner,
		Tag:    collision.TagHeroProjectile,
		Box:    collision.NewBoundingBox(pos.X, pos.Y, n.Size.X, n.Size.Y),
	})
	return p
}

// Projectiles returns the number of shots in flight
func (s *Stage) Projectiles() int {
	return len(s.shots)
}

// moveProjectiles advances every shot and drops those that left the screen
func (s *Stage) moveProjectiles(dt float64) {
	var gone []scene.Handle
	for _, h := range s.shots {
		p := s.projectiles[h]
		n := s.Graph.Node(h)
		if p == nil || n == nil {
			gone = append(gone, h)
			continue
		}
		n.Offset = n.Offset.Add(p.Velocity.Scale(dt))
		box := collision.NewBoundingBox(n.Offset.X, n.Offset.Y, n.Size.X, n.Size.Y)
		if !box.Intersects(s.area.Box) {
			gone = append(gone, h)
			continue
		}
		s.detector.Move(h, box)
	}
	for _, h := range gone {
		s.removeProjectile(h)
	}
}

// removeProjectile drops a shot from the stage. Unknown handles are ignored.
func (s *Stage) removeProjectile(h scene.Handle) {
	if _, ok := s.projectiles[h]; !ok {
		return
	}
	delete(s.projectiles, h)
	s.detector.Unregister(h)
	s.Graph.Remove(h)
	for i, x := range s.shots {
		if x == h {
			s.shots = append(s.shots[:i], s.shots[i+1:]...)
			break
		}
	}
}
