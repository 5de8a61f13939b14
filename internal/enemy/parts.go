package enemy

import (
	"errors"
	"fmt"

	"shmup/internal/scene"
)

var (
	ErrNoParts           = errors.New("assembly has no parts")
	ErrEmptyPartName     = errors.New("part name is empty")
	ErrDuplicatePart     = errors.New("duplicate part name")
	ErrNonPositiveHealth = errors.New("part health must be positive")
	ErrUnknownProtector  = errors.New("unknown protector")
	ErrProtectionCycle   = errors.New("protection cycle")
)

// PartSpec declares a part before it is built into an assembly
type PartSpec struct {
	Name        string
	Health      float64
	ProtectedBy []string
}

// Part is one independently damageable piece of an enemy
type Part struct {
	Name        string
	Health      float64
	MaxHealth   float64
	ProtectedBy []string     // as declared
	Visual      scene.Handle // scene.None when unbound

	protectors []int
	destroyed  bool
}

// Destroyed reports whether the part has been knocked out
func (p *Part) Destroyed() bool {
	return p.destroyed
}

// Impact is the result of resolving a contact to a part
type Impact struct {
	Part      int
	Found     bool
	Protected bool
}

// Assembly owns the parts of one enemy. Protection references are resolved to
// indices once, at Build time.
type Assembly struct {
	parts    []Part
	byName   map[string]int
	byHandle map[scene.Handle]int
}

// Build validates specs and resolves the protection graph
func Build(specs []PartSpec) (*Assembly, error) {
	if len(specs) == 0 {
		return nil, ErrNoParts
	}

	a := &Assembly{
		parts:    make([]Part, len(specs)),
		byName:   make(map[string]int, len(specs)),
		byHandle: make(map[scene.Handle]int),
	}

	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("part %d: %w", i, ErrEmptyPartName)
		}
		if _, dup := a.byName[s.Name]; dup {
			return nil, fmt.Errorf("part %q: %w", s.Name, ErrDuplicatePart)
		}
		if s.Health <= 0 {
			return nil, fmt.Errorf("part %q: %w (got %v)", s.Name, ErrNonPositiveHealth, s.Health)
		}
		a.byName[s.Name] = i
		a.parts[i] = Part{
			Name:        s.Name,
			Health:      s.Health,
			MaxHealth:   s.Health,
			ProtectedBy: append([]string(nil), s.ProtectedBy...),
		}
	}

	for i := range a.parts {
		p := &a.parts[i]
		for _, dep := range p.ProtectedBy {
			j, ok := a.byName[dep]
			if !ok {
				return nil, fmt.Errorf("part %q protected by %q: %w", p.Name, dep, ErrUnknownProtector)
			}
			p.protectors = append(p.protectors, j)
		}
	}

	if cycle := a.findCycle(); cycle != "" {
		return nil, fmt.Errorf("%w through %q", ErrProtectionCycle, cycle)
	}

	return a, nil
}

// findCycle returns the name of a part on a protection cycle, or "".
// A part on a cycle could never become vulnerable.
func (a *Assembly) findCycle() string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(a.parts))
	onCycle := -1

	var visit func(i int) bool
	visit = func(i int) bool {
		state[i] = visiting
		for _, j := range a.parts[i].protectors {
			switch state[j] {
			case visiting:
				onCycle = j
				return true
			case unvisited:
				if visit(j) {
					return true
				}
			}
		}
		state[i] = done
		return false
	}

	for i := range a.parts {
		if state[i] == unvisited && visit(i) {
			return a.parts[onCycle].Name
		}
	}
	return ""
}

// Len returns the number of parts
func (a *Assembly) Len() int {
	return len(a.parts)
}

// Part returns the part at index i
func (a *Assembly) Part(i int) *Part {
	return &a.parts[i]
}

// Index returns the index of the named part
func (a *Assembly) Index(name string) (int, bool) {
	i, ok := a.byName[name]
	return i, ok
}

// BindVisuals resolves each part's visual handle by name and indexes handles
// for FindPart. It returns the names that did not resolve; those parts keep
// working by name without a visual.
func (a *Assembly) BindVisuals(lookup func(name string) (scene.Handle, bool)) []string {
	var unbound []string
	a.byHandle = make(map[scene.Handle]int, len(a.parts))

	for i := range a.parts {
		p := &a.parts[i]
		h, ok := lookup(p.Name)
		if !ok || h == scene.None {
			p.Visual = scene.None
			unbound = append(unbound, p.Name)
			continue
		}
		p.Visual = h
		a.byHandle[h] = i
	}
	return unbound
}

// FindPart maps a visual/collider handle back to its part
func (a *Assembly) FindPart(h scene.Handle) (int, bool) {
	i, ok := a.byHandle[h]
	return i, ok
}

// IsDestroyed reports whether the named part is destroyed. Names that are not
// in the assembly count as destroyed.
func (a *Assembly) IsDestroyed(name string) bool {
	i, ok := a.byName[name]
	if !ok {
		return true
	}
	return a.parts[i].Health <= 0
}

// IsProtected reports whether any protector of part i is still alive
func (a *Assembly) IsProtected(i int) bool {
	for _, j := range a.parts[i].protectors {
		if a.parts[j].Health > 0 {
			return true
		}
	}
	return false
}

// ResolveImpact finds the part struck by a contact between handles ha and hb,
// trying ha first.
func (a *Assembly) ResolveImpact(ha, hb scene.Handle) Impact {
	i, ok := a.FindPart(ha)
	if !ok {
		i, ok = a.FindPart(hb)
	}
	if !ok {
		return Impact{}
	}
	return Impact{
		Part:      i,
		Found:     true,
		Protected: a.IsProtected(i),
	}
}

// ApplyDamage subtracts amount from part i. onDestroyed runs exactly once, on
// the hit that takes health from above zero to zero or below. Damage to a
// destroyed part is ignored. Returns true when this hit destroyed the part.
func (a *Assembly) ApplyDamage(i int, amount float64, onDestroyed func(*Part)) bool {
	p := &a.parts[i]
	if p.destroyed || amount <= 0 {
		return false
	}

	p.Health -= amount
	if p.Health > 0 {
		return false
	}

	p.destroyed = true
	if onDestroyed != nil {
		onDestroyed(p)
	}
	return true
}

// AllDestroyed reports whether every part is destroyed
func (a *Assembly) AllDestroyed() bool {
	for i := range a.parts {
		if !a.parts[i].destroyed {
			return false
		}
	}
	return true
}

// Alive returns the number of parts still standing
func (a *Assembly) Alive() int {
	n := 0
	for i := range a.parts {
		if !a.parts[i].destroyed {
			n++
		}
	}
	return n
}
