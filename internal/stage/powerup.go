package stage

import (
	"shmup/internal/collision"
	"shmup/internal/config"
	"shmup/internal/event"
	"shmup/internal/mathutil"
	"shmup/internal/scene"

	"golang.org/x/image/colornames"
)

const powerUpOwner = "power_up"

// DropPowerUp releases a pickup at pos. It falls toward the bottom edge and
// switches the hero to the next weapon when touched.
func (s *Stage) DropPowerUp(pos mathutil.Vec2) scene.Handle {
	size := s.cfg.GetPowerUpSize()
	n := s.Graph.NewNode(scene.None, "power_up", pos, mathutil.V(size, size),
		config.ColorByName(s.cfg.PowerUps.Color, colornames.Lime))

	s.drops = append(s.drops, n.Handle)
	s.detector.Register(collision.Collider{
		Handle: n.Handle,
		Owner:  powerUpOwner,
		Tag:    collision.TagPowerUp,
		Box:    collision.NewBoundingBox(pos.X, pos.Y, size, size),
	})
	return n.Handle
}

// PowerUps returns the number of pickups still falling
func (s *Stage) PowerUps() int {
	return len(s.drops)
}

func (s *Stage) subscribePowerUps() {
	s.Events.Subscribe(event.EnemyDestroyed, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.EnemyEvent); ok && data.DropPowerUp {
			s.DropPowerUp(mathutil.V(data.X, data.Y))
		}
	}))
}

// movePowerUps lets pickups fall and drops those below the screen
func (s *Stage) movePowerUps(dt float64) {
	speed := s.cfg.GetPowerUpFallSpeed()
	var gone []scene.Handle
	for _, h := range s.drops {
		n := s.Graph.Node(h)
		if n == nil {
			gone = append(gone, h)
			continue
		}
		n.Offset.Y += speed * dt
		box := collision.NewBoundingBox(n.Offset.X, n.Offset.Y, n.Size.X, n.Size.Y)
		if !box.Intersects(s.area.Box) {
			gone = append(gone, h)
			continue
		}
		s.detector.Move(h, box)
	}
	for _, h := range gone {
		s.removePowerUp(h)
	}
}

// collectPowerUps hands every pickup touching the hero to the hero
func (s *Stage) collectPowerUps() {
	for _, h := range s.detector.Overlapping(s.hero.box(s.Graph), collision.TagPowerUp) {
		s.removePowerUp(h)
		name := s.cfg.NextWeapon(s.hero.WeaponName())
		s.hero.equip(name, s.cfg.GetWeaponConfig(name))
		s.Stats.PowerUpCollected()
	}
}

func (s *Stage) removePowerUp(h scene.Handle) {
	s.detector.Unregister(h)
	s.Graph.Remove(h)
	for i, x := range s.drops {
		if x == h {
			s.drops = append(s.drops[:i], s.drops[i+1:]...)
			break
		}
	}
}
