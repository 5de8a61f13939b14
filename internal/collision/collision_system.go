package collision

import (
	"shmup/internal/scene"
)

// Tag classifies a collider the way the game reacts to it
type Tag int

const (
	TagNone Tag = iota
	TagEnemyPart
	TagHeroProjectile
	TagPowerUp
)

func (t Tag) String() string {
	switch t {
	case TagEnemyPart:
		return "enemy_part"
	case TagHeroProjectile:
		return "hero_projectile"
	case TagPowerUp:
		return "power_up"
	default:
		return "none"
	}
}

// Collider is a box registered with the detector. Owner groups the colliders
// of one entity (every part of an enemy shares the enemy's owner id).
type Collider struct {
	Handle scene.Handle
	Owner  string
	Tag    Tag
	Box    BoundingBox
}

// Report describes one contact between an entity and another object.
// SelfContact and OtherContact are the two colliders that touched; callers
// must not rely on which of them belongs to the receiving entity.
type Report struct {
	Owner        string
	SelfContact  scene.Handle
	OtherContact scene.Handle
	OtherObject  scene.Handle
	OtherTag     Tag
}

// Detector manages registered colliders and finds overlaps between enemy
// parts and hero projectiles.
type Detector struct {
	colliders map[scene.Handle]*Collider
	order     []scene.Handle
	swap      func() bool
}

// NewDetector creates an empty detector
func NewDetector() *Detector {
	return &Detector{
		colliders: make(map[scene.Handle]*Collider),
	}
}

// SetContactOrder installs a function deciding, per report, whether the two
// contact handles are reported swapped. Used to reproduce engines that do not
// guarantee which side of a contact is "this" collider.
func (d *Detector) SetContactOrder(swap func() bool) {
	d.swap = swap
}

// Register adds a collider, replacing any previous one with the same handle
func (d *Detector) Register(c Collider) {
	if _, exists := d.colliders[c.Handle]; !exists {
		d.order = append(d.order, c.Handle)
	}
	cc := c
	d.colliders[c.Handle] = &cc
}

// Unregister removes a collider
func (d *Detector) Unregister(h scene.Handle) {
	if _, exists := d.colliders[h]; !exists {
		return
	}
	delete(d.colliders, h)
	for i, x := range d.order {
		if x == h {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// UnregisterOwner removes every collider belonging to owner
func (d *Detector) UnregisterOwner(owner string) {
	kept := d.order[:0]
	for _, h := range d.order {
		if c := d.colliders[h]; c.Owner == owner {
			delete(d.colliders, h)
			continue
		}
		kept = append(kept, h)
	}
	d.order = kept
}

// Move updates the box of a registered collider
func (d *Detector) Move(h scene.Handle, box BoundingBox) {
	if c, ok := d.colliders[h]; ok {
		c.Box = box
	}
}

// Len returns the number of registered colliders
func (d *Detector) Len() int {
	return len(d.order)
}

// Get returns a copy of the collider for h
func (d *Detector) Get(h scene.Handle) (Collider, bool) {
	c, ok := d.colliders[h]
	if !ok {
		return Collider{}, false
	}
	return *c, true
}

// Detect returns at most one report per (owner, projectile) pair, using the
// first overlapping part in registration order as the contact. Reports are
// ordered by projectile registration, then owner.
func (d *Detector) Detect() []Report {
	var reports []Report

	for _, ph := range d.order {
		p := d.colliders[ph]
		if p.Tag != TagHeroProjectile {
			continue
		}
		seen := make(map[string]bool)
		for _, h := range d.order {
			c := d.colliders[h]
			if c.Tag != TagEnemyPart || seen[c.Owner] {
				continue
			}
			if !c.Box.Intersects(p.Box) {
				continue
			}
			seen[c.Owner] = true

			r := Report{
				Owner:        c.Owner,
				SelfContact:  c.Handle,
				OtherContact: p.Handle,
				OtherObject:  p.Handle,
				OtherTag:     p.Tag,
			}
			if d.swap != nil && d.swap() {
				r.SelfContact, r.OtherContact = r.OtherContact, r.SelfContact
			}
			reports = append(reports, r)
		}
	}

	return reports
}

// Overlapping returns the colliders with the given tag that intersect box, in
// registration order.
func (d *Detector) Overlapping(box BoundingBox, tag Tag) []scene.Handle {
	var out []scene.Handle
	for _, h := range d.order {
		if c := d.colliders[h]; c.Tag == tag && c.Box.Intersects(box) {
			out = append(out, h)
		}
	}
	return out
}
