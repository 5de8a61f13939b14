package stage

import (
	"fmt"
	"log"
	"math/rand"

	"shmup/internal/collision"
	"shmup/internal/config"
	"shmup/internal/enemy"
	"shmup/internal/event"
	"shmup/internal/mathutil"
	"shmup/internal/scene"
	"shmup/internal/threading/core"
	"shmup/internal/threading/monitoring"
)

// Stage owns the simulation: the scene graph, the enemies on it, the hero's
// projectiles and the collision detector. Step is not safe for concurrent use.
type Stage struct {
	Graph  *scene.Graph
	Events *event.Dispatcher
	Stats  *monitoring.PerformanceMonitor

	// AutoSpawn and AutoFire drive the attract-mode loop; tests switch them
	// off and spawn or fire by hand.
	AutoSpawn bool
	AutoFire  bool

	cfg      *config.Config
	defs     *enemy.EnemyYAMLConfig
	detector *collision.Detector
	pool     *core.WorkerPool
	rng      *rand.Rand
	area     enemy.StaticArea

	now       float64
	nextSpawn float64
	spawned   int

	enemies     []*enemy.Enemy
	byID        map[string]*enemy.Enemy
	projectiles map[scene.Handle]*Projectile
	shots       []scene.Handle // projectile handles in firing order
	drops       []scene.Handle // falling power-ups

	hero *Hero
}

// New creates a stage for the given configuration. seed drives every random
// choice made by the stage and its enemies.
func New(cfg *config.Config, defs *enemy.EnemyYAMLConfig, seed int64) (*Stage, error) {
	if cfg == nil || defs == nil {
		return nil, fmt.Errorf("stage: config and enemy definitions are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	for _, key := range cfg.Enemies.SpawnKeys {
		if _, err := defs.GetEnemyByKey(key); err != nil {
			return nil, fmt.Errorf("stage: spawn key: %w", err)
		}
	}

	w := float64(cfg.GetScreenWidth())
	h := float64(cfg.GetScreenHeight())

	s := &Stage{
		Graph:       scene.NewGraph(),
		Events:      event.NewDispatcher(),
		Stats:       monitoring.NewPerformanceMonitor(),
		AutoSpawn:   true,
		AutoFire:    true,
		cfg:         cfg,
		defs:        defs,
		detector:    collision.NewDetector(),
		pool:        core.CreateDefaultWorkerPool(),
		rng:         rand.New(rand.NewSource(seed)),
		area:        enemy.StaticArea{Box: collision.FromMinMax(0, 0, w, h), Margin: cfg.PlayArea.SpawnPadding},
		byID:        make(map[string]*enemy.Enemy),
		projectiles: make(map[scene.Handle]*Projectile),
	}

	// Contacts come back in either order, like a physics engine that does
	// not promise which collider is "this" one.
	s.detector.SetContactOrder(func() bool { return s.rng.Intn(2) == 0 })

	s.hero = newHero(s.Graph, cfg, w, h)
	s.subscribeStats()
	s.subscribePowerUps()

	return s, nil
}

// Close stops the worker pool
func (s *Stage) Close() {
	s.pool.Stop()
}

// Now returns the simulation time in seconds
func (s *Stage) Now() float64 {
	return s.now
}

// Area returns the play area enemies wander in
func (s *Stage) Area() enemy.PlayArea {
	return s.area
}

// Hero returns the auto-firing turret
func (s *Stage) Hero() *Hero {
	return s.hero
}

// Enemies returns the enemies currently on the stage
func (s *Stage) Enemies() []*enemy.Enemy {
	out := make([]*enemy.Enemy, len(s.enemies))
	copy(out, s.enemies)
	return out
}

// Enemy returns the enemy with the given id
func (s *Stage) Enemy(id string) (*enemy.Enemy, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Step advances the simulation by dt seconds
func (s *Stage) Step(dt float64) {
	frame := s.Stats.StartFrame()
	defer frame.EndFrame()

	if dt < 0 {
		dt = 0
	}
	s.now += dt

	if s.AutoSpawn {
		s.spawnDue()
	}
	s.hero.update(dt, s.Graph, s.area.Box)
	if s.AutoFire && s.hero.ready(s.now) {
		s.FireProjectile(s.hero.Muzzle(s.Graph), s.hero.weapon)
		s.hero.fired(s.now)
	}

	// Enemy motion only touches each enemy's own nodes
	now := s.now
	core.ForEach(s.pool, s.enemies, func(e *enemy.Enemy) {
		e.Tick(now)
	})

	s.moveProjectiles(dt)
	s.movePowerUps(dt)
	s.collectPowerUps()
	s.syncColliders()
	s.deliver(s.detector.Detect())
	s.sweepEnemies()

	s.Stats.UpdateActive(len(s.enemies), len(s.shots))
}

// SpawnEnemy places an enemy of kind at pos
func (s *Stage) SpawnEnemy(kind string, pos mathutil.Vec2) (*enemy.Enemy, error) {
	def, err := s.defs.GetEnemyByKey(kind)
	if err != nil {
		return nil, err
	}

	s.spawned++
	id := fmt.Sprintf("%s#%d", kind, s.spawned)

	e, err := enemy.New(id, kind, def, pos, s.now, enemy.Deps{
		Graph:              s.Graph,
		Area:               s.area,
		Events:             s.Events,
		Rng:                rand.New(rand.NewSource(s.rng.Int63())),
		DamageColor:        s.cfg.GetDamageColor(),
		ShowDamage:         s.cfg.GetShowDamageDuration(),
		DefaultLegDuration: s.cfg.GetLegDuration(),
	})
	if err != nil {
		return nil, err
	}

	s.enemies = append(s.enemies, e)
	s.byID[id] = e
	for _, c := range e.Colliders() {
		s.detector.Register(c)
	}
	s.Stats.EnemySpawned()
	return e, nil
}

// spawnDue spawns a random configured enemy above the top edge once the
// spawn timer runs out.
func (s *Stage) spawnDue() {
	keys := s.cfg.Enemies.SpawnKeys
	if len(keys) == 0 || s.now < s.nextSpawn {
		return
	}
	if limit := s.cfg.Enemies.MaxActive; limit > 0 && len(s.enemies) >= limit {
		return
	}

	s.nextSpawn = s.now + s.cfg.Enemies.SpawnInterval
	inner := s.area.Box.Shrink(s.area.Margin)
	minX, _, maxX, _ := inner.GetBounds()
	pos := mathutil.V(
		mathutil.RandRange(s.rng, minX, maxX),
		s.area.Box.Min().Y-s.area.Margin,
	)

	kind := keys[s.rng.Intn(len(keys))]
	if _, err := s.SpawnEnemy(kind, pos); err != nil {
		log.Printf("Warning: spawning %s failed, auto spawn disabled: %v", kind, err)
		s.AutoSpawn = false
	}
}

// syncColliders moves part colliders to where the parts are now
func (s *Stage) syncColliders() {
	for _, e := range s.enemies {
		for _, c := range e.Colliders() {
			if _, ok := s.detector.Get(c.Handle); ok {
				s.detector.Move(c.Handle, c.Box)
			} else {
				s.detector.Register(c)
			}
		}
	}
}

// deliver routes collision reports to their enemies one at a time. A
// projectile consumed by an earlier report is skipped.
func (s *Stage) deliver(reports []collision.Report) {
	for _, r := range reports {
		p, ok := s.projectiles[r.OtherObject]
		if !ok {
			continue
		}
		e, ok := s.byID[r.Owner]
		if !ok {
			continue
		}

		res := e.HandleCollision(r, p.Damage, s.now)
		s.record(res.Outcome)

		if res.Knocked != scene.None {
			s.detector.Unregister(res.Knocked)
		}
		if res.Discard != scene.None {
			s.removeProjectile(res.Discard)
		}
	}
}

func (s *Stage) record(o enemy.Outcome) {
	switch o {
	case enemy.OutcomeOffScreen:
		s.Stats.OffScreenHit()
	case enemy.OutcomeNoPart:
		s.Stats.MissedPart()
	case enemy.OutcomeProtected:
		s.Stats.ProtectedHit()
	case enemy.OutcomeDamaged, enemy.OutcomePartDestroyed, enemy.OutcomeEnemyDestroyed:
		s.Stats.Hit()
	}
}

// sweepEnemies drops destroyed or despawned enemies along with their nodes
// and colliders.
func (s *Stage) sweepEnemies() {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if !e.Removed() {
			kept = append(kept, e)
			continue
		}
		s.detector.UnregisterOwner(e.ID)
		s.Graph.Remove(e.Root())
		delete(s.byID, e.ID)
	}
	for i := len(kept); i < len(s.enemies); i++ {
		s.enemies[i] = nil
	}
	s.enemies = kept
}

func (s *Stage) subscribeStats() {
	s.Events.Subscribe(event.PartDestroyed, event.ListenerFunc(func(event.Event) {
		s.Stats.PartDestroyed()
	}))
	s.Events.Subscribe(event.EnemyDestroyed, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.EnemyEvent); ok {
			s.Stats.EnemyDestroyed(data.Score)
		}
	}))
	s.Events.Subscribe(event.ProjectileDiscarded, event.ListenerFunc(func(event.Event) {
		s.Stats.ProjectileGone()
	}))
}
