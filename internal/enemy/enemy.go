package enemy

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"sync"

	"shmup/internal/collision"
	"shmup/internal/config"
	"shmup/internal/event"
	"shmup/internal/mathutil"
	"shmup/internal/scene"
)

// Deps are the collaborators an enemy is wired to at spawn
type Deps struct {
	Graph  *scene.Graph
	Area   PlayArea
	// Events may be nil. Listeners run while the enemy is locked and must
	// not call back into it.
	Events *event.Dispatcher
	Rng    *rand.Rand

	DamageColor        color.RGBA
	ShowDamage         float64 // seconds a struck part stays tinted
	DefaultLegDuration float64
}

// Outcome says what a collision report did to the enemy
type Outcome int

const (
	OutcomeIgnored Outcome = iota // not a hero projectile
	OutcomeRemoved                // enemy already gone; nothing happened
	OutcomeOffScreen
	OutcomeNoPart
	OutcomeProtected
	OutcomeNoDamage // projectile carries no damage
	OutcomeDamaged
	OutcomePartDestroyed
	OutcomeEnemyDestroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRemoved:
		return "removed"
	case OutcomeOffScreen:
		return "off_screen"
	case OutcomeNoPart:
		return "no_part"
	case OutcomeProtected:
		return "protected"
	case OutcomeNoDamage:
		return "no_damage"
	case OutcomeDamaged:
		return "damaged"
	case OutcomePartDestroyed:
		return "part_destroyed"
	case OutcomeEnemyDestroyed:
		return "enemy_destroyed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports the effect of HandleCollision
type Result struct {
	Outcome Outcome
	Part    string
	// Discard is the object the environment must remove, scene.None if none
	Discard scene.Handle
	// Knocked is the visual of a part destroyed by this hit; its collider
	// should be dropped.
	Knocked scene.Handle
}

// Enemy is a composite enemy: it wanders between random waypoints and is
// shot down part by part.
type Enemy struct {
	mu sync.Mutex

	ID   string
	Kind string

	pos    mathutil.Vec2
	motion *MotionController
	parts  *Assembly
	graph  *scene.Graph
	root   scene.Handle
	area   PlayArea
	events *event.Dispatcher
	rng    *rand.Rand

	score       int
	dropChance  float64
	damageColor color.RGBA
	showDamage  float64
	flashUntil  []float64

	removed bool
}

// New spawns an enemy of definition def at spawn. The scene nodes for its
// parts are created under a root named id.
func New(id, kind string, def *EnemyDefinition, spawn mathutil.Vec2, now float64, deps Deps) (*Enemy, error) {
	if deps.Graph == nil {
		return nil, fmt.Errorf("enemy %s: scene graph is required", id)
	}

	parts, err := Build(def.PartSpecs())
	if err != nil {
		return nil, fmt.Errorf("enemy %s (%s): %w", id, kind, err)
	}

	legDuration := def.LegDuration
	if legDuration <= 0 {
		legDuration = deps.DefaultLegDuration
	}
	if legDuration <= 0 {
		legDuration = 4
	}
	motion, err := NewMotionController(legDuration, deps.Area, deps.Rng)
	if err != nil {
		return nil, fmt.Errorf("enemy %s (%s): %w", id, kind, err)
	}

	rng := deps.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	e := &Enemy{
		ID:          id,
		Kind:        kind,
		pos:         spawn,
		motion:      motion,
		parts:       parts,
		graph:       deps.Graph,
		area:        deps.Area,
		events:      deps.Events,
		rng:         rng,
		score:       def.Score,
		dropChance:  def.PowerUpDropChance,
		damageColor: deps.DamageColor,
		showDamage:  deps.ShowDamage,
		flashUntil:  make([]float64, parts.Len()),
	}

	root := deps.Graph.NewNode(scene.None, id, spawn, mathutil.Vec2{}, color.RGBA{})
	e.root = root.Handle
	for _, p := range def.Parts {
		if !p.HasVisual() {
			continue
		}
		deps.Graph.NewNode(e.root, p.Name,
			mathutil.V(p.Offset[0], p.Offset[1]),
			mathutil.V(p.Size[0], p.Size[1]),
			config.ColorByName(p.Color, color.RGBA{R: 200, G: 200, B: 200, A: 255}))
	}

	if unbound := parts.BindVisuals(deps.Graph.Lookup(e.root)); len(unbound) > 0 {
		log.Printf("Warning: enemy %s (%s) has parts without visuals: %v", id, kind, unbound)
	}

	motion.Initialize(spawn, now)
	motion.PickNewLeg(now)

	return e, nil
}

// Tick advances motion to time now and expires damage flashes
func (e *Enemy) Tick(now float64) mathutil.Vec2 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return e.pos
	}

	e.pos = e.motion.Tick(now)
	if n := e.graph.Node(e.root); n != nil {
		n.Offset = e.pos
	}

	for i, until := range e.flashUntil {
		if until > 0 && now >= until {
			e.flashUntil[i] = 0
			if n := e.graph.Node(e.parts.Part(i).Visual); n != nil {
				n.Tint = nil
			}
		}
	}

	return e.pos
}

// HandleCollision resolves a collision report against the enemy's parts.
// damage is what the projectile deals on hit.
func (e *Enemy) HandleCollision(r collision.Report, damage, now float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return Result{Outcome: OutcomeRemoved}
	}
	if r.OtherTag != collision.TagHeroProjectile {
		return Result{Outcome: OutcomeIgnored}
	}

	// From here on the projectile is always consumed.
	res := Result{Discard: r.OtherObject}

	// Enemies don't take damage unless they're on screen
	if !e.onScreen() {
		res.Outcome = OutcomeOffScreen
		e.discard(res.Discard, res.Outcome)
		return res
	}

	imp := e.parts.ResolveImpact(r.SelfContact, r.OtherContact)
	if !imp.Found {
		res.Outcome = OutcomeNoPart
		e.discard(res.Discard, res.Outcome)
		return res
	}

	part := e.parts.Part(imp.Part)
	res.Part = part.Name
	if imp.Protected {
		res.Outcome = OutcomeProtected
		e.discard(res.Discard, res.Outcome)
		return res
	}

	if damage <= 0 {
		res.Outcome = OutcomeNoDamage
		e.discard(res.Discard, res.Outcome)
		return res
	}

	e.flash(imp.Part, now)
	res.Outcome = OutcomeDamaged
	knocked := e.parts.ApplyDamage(imp.Part, damage, nil)
	e.dispatch(event.PartHit, event.PartEvent{EnemyID: e.ID, Part: part.Name, Health: part.Health})

	if knocked {
		e.partDestroyed(part)
		res.Outcome = OutcomePartDestroyed
		res.Knocked = part.Visual
		if e.parts.AllDestroyed() {
			res.Outcome = OutcomeEnemyDestroyed
			e.destroy()
		}
	}

	e.discard(res.Discard, res.Outcome)
	return res
}

// partDestroyed hides the part's visual and announces it. Called once per
// part, after the PartHit of the lethal hit.
func (e *Enemy) partDestroyed(p *Part) {
	if n := e.graph.Node(p.Visual); n != nil {
		n.Hidden = true
		n.Tint = nil
	}
	if i, ok := e.parts.Index(p.Name); ok {
		e.flashUntil[i] = 0
	}
	e.dispatch(event.PartDestroyed, event.PartEvent{EnemyID: e.ID, Part: p.Name, Health: p.Health})
}

// destroy marks the whole enemy gone and announces it once
func (e *Enemy) destroy() {
	e.removed = true
	e.dispatch(event.EnemyDestroyed, event.EnemyEvent{
		EnemyID:     e.ID,
		Kind:        e.Kind,
		X:           e.pos.X,
		Y:           e.pos.Y,
		Score:       e.score,
		DropPowerUp: e.rng.Float64() < e.dropChance,
	})
}

func (e *Enemy) flash(i int, now float64) {
	n := e.graph.Node(e.parts.Part(i).Visual)
	if n == nil || e.showDamage <= 0 {
		return
	}
	tint := e.damageColor
	n.Tint = &tint
	e.flashUntil[i] = now + e.showDamage
}

func (e *Enemy) discard(h scene.Handle, why Outcome) {
	if h == scene.None {
		return
	}
	e.dispatch(event.ProjectileDiscarded, event.DiscardEvent{Object: h, Reason: why.String()})
}

func (e *Enemy) dispatch(t event.EventType, data interface{}) {
	if e.events != nil {
		e.events.Dispatch(event.Event{Type: t, Data: data})
	}
}

// onScreen reports whether the enemy's combined part bounds are visible.
// An enemy without visible parts has no extent and counts as off screen.
func (e *Enemy) onScreen() bool {
	box := e.bounds()
	if box.IsEmpty() {
		return false
	}
	return collision.ScreenBoundsCheck(box, e.area.Bounds(), collision.BoundsOffScreen).IsZero()
}

func (e *Enemy) bounds() collision.BoundingBox {
	var box collision.BoundingBox
	for i := 0; i < e.parts.Len(); i++ {
		if pb, ok := e.partBox(i); ok {
			box = box.Union(pb)
		}
	}
	return box
}

// partBox returns the world box of a visible part
func (e *Enemy) partBox(i int) (collision.BoundingBox, bool) {
	p := e.parts.Part(i)
	n := e.graph.Node(p.Visual)
	if n == nil || n.Hidden || p.Destroyed() {
		return collision.BoundingBox{}, false
	}
	pos := e.graph.WorldPos(p.Visual)
	return collision.NewBoundingBox(pos.X, pos.Y, n.Size.X, n.Size.Y), true
}

// Colliders returns a collider for every visible, intact part
func (e *Enemy) Colliders() []collision.Collider {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []collision.Collider
	for i := 0; i < e.parts.Len(); i++ {
		box, ok := e.partBox(i)
		if !ok {
			continue
		}
		out = append(out, collision.Collider{
			Handle: e.parts.Part(i).Visual,
			Owner:  e.ID,
			Tag:    collision.TagEnemyPart,
			Box:    box,
		})
	}
	return out
}

// Bounds returns the combined box of all visible parts
func (e *Enemy) Bounds() collision.BoundingBox {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds()
}

// Position returns the position computed by the last Tick
func (e *Enemy) Position() mathutil.Vec2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Root returns the scene node the parts hang from
func (e *Enemy) Root() scene.Handle {
	return e.root
}

// Removed reports whether the enemy was destroyed or despawned
func (e *Enemy) Removed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removed
}

// Despawn removes the enemy without destruction effects. Later collision
// reports become no-ops.
func (e *Enemy) Despawn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removed = true
}

// PartHealth returns the current health of the named part
func (e *Enemy) PartHealth(name string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.parts.Index(name)
	if !ok {
		return 0, false
	}
	return e.parts.Part(i).Health, true
}

// PartVisual returns the scene handle bound to the named part
func (e *Enemy) PartVisual(name string) (scene.Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.parts.Index(name)
	if !ok || e.parts.Part(i).Visual == scene.None {
		return scene.None, false
	}
	return e.parts.Part(i).Visual, true
}

// AliveParts returns how many parts are still intact
func (e *Enemy) AliveParts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.parts.Alive()
}

// Score returns the points awarded for destroying the enemy
func (e *Enemy) Score() int {
	return e.score
}
