package enemy

import (
	"errors"
	"testing"

	"shmup/internal/scene"
)

// lookupOf builds a scene lookup from a fixed name table
func lookupOf(m map[string]scene.Handle) func(string) (scene.Handle, bool) {
	return func(name string) (scene.Handle, bool) {
		h, ok := m[name]
		return h, ok
	}
}

func coreAndShield(t *testing.T) *Assembly {
	t.Helper()
	a, err := Build([]PartSpec{
		{Name: "core", Health: 10, ProtectedBy: []string{"shield"}},
		{Name: "shield", Health: 1},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.BindVisuals(lookupOf(map[string]scene.Handle{"core": 11, "shield": 12}))
	return a
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		specs []PartSpec
		want  error
	}{
		{"no parts", nil, ErrNoParts},
		{"empty name", []PartSpec{{Name: "", Health: 1}}, ErrEmptyPartName},
		{"duplicate", []PartSpec{{Name: "a", Health: 1}, {Name: "a", Health: 2}}, ErrDuplicatePart},
		{"zero health", []PartSpec{{Name: "a", Health: 0}}, ErrNonPositiveHealth},
		{"unknown protector", []PartSpec{{Name: "a", Health: 1, ProtectedBy: []string{"ghost"}}}, ErrUnknownProtector},
		{"self protection", []PartSpec{{Name: "a", Health: 1, ProtectedBy: []string{"a"}}}, ErrProtectionCycle},
		{"cycle", []PartSpec{
			{Name: "a", Health: 1, ProtectedBy: []string{"b"}},
			{Name: "b", Health: 1, ProtectedBy: []string{"c"}},
			{Name: "c", Health: 1, ProtectedBy: []string{"a"}},
		}, ErrProtectionCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.specs)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build err = %v, want %v", err, tt.want)
			}
		})
	}

	// Diamond-shaped graphs are fine.
	_, err := Build([]PartSpec{
		{Name: "core", Health: 1, ProtectedBy: []string{"l", "r"}},
		{Name: "l", Health: 1, ProtectedBy: []string{"base"}},
		{Name: "r", Health: 1, ProtectedBy: []string{"base"}},
		{Name: "base", Health: 1},
	})
	if err != nil {
		t.Errorf("diamond graph rejected: %v", err)
	}
}

func TestBindVisualsLeavesMissingPartsUsable(t *testing.T) {
	a, err := Build([]PartSpec{
		{Name: "core", Health: 2, ProtectedBy: []string{"hull"}},
		{Name: "hull", Health: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	unbound := a.BindVisuals(lookupOf(map[string]scene.Handle{"core": 5}))
	if len(unbound) != 1 || unbound[0] != "hull" {
		t.Fatalf("unbound = %v, want [hull]", unbound)
	}

	hull, _ := a.Index("hull")
	if a.Part(hull).Visual != scene.None {
		t.Error("unbound part should have no visual")
	}
	core, _ := a.FindPart(5)
	if !a.IsProtected(core) {
		t.Error("unbound hull should still protect core")
	}
	a.ApplyDamage(hull, 1, nil)
	if a.IsProtected(core) {
		t.Error("core should be exposed once hull is destroyed by name")
	}
}

func TestIsDestroyedTreatsUnknownNamesAsDestroyed(t *testing.T) {
	a := coreAndShield(t)
	if !a.IsDestroyed("nope") {
		t.Error("unknown names should count as destroyed")
	}
	if a.IsDestroyed("shield") {
		t.Error("shield should be alive")
	}
}

func TestIsProtectedTracksEveryProtector(t *testing.T) {
	a, err := Build([]PartSpec{
		{Name: "core", Health: 5, ProtectedBy: []string{"l", "r"}},
		{Name: "l", Health: 1},
		{Name: "r", Health: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	core, _ := a.Index("core")
	l, _ := a.Index("l")
	r, _ := a.Index("r")

	if !a.IsProtected(core) {
		t.Fatal("core should start protected")
	}
	a.ApplyDamage(l, 1, nil)
	if !a.IsProtected(core) {
		t.Error("core should stay protected while r is alive")
	}
	a.ApplyDamage(r, 5, nil)
	if a.IsProtected(core) {
		t.Error("core should be exposed once every protector is destroyed")
	}
	if a.IsProtected(l) {
		t.Error("part without protectors is never protected")
	}
}

func TestResolveImpactFallsBackToSecondHandle(t *testing.T) {
	a := coreAndShield(t)
	const projectile scene.Handle = 99

	imp := a.ResolveImpact(projectile, 12)
	if !imp.Found || a.Part(imp.Part).Name != "shield" {
		t.Fatalf("expected shield via second handle, got %+v", imp)
	}

	if imp := a.ResolveImpact(projectile, 98); imp.Found {
		t.Errorf("expected no part, got %+v", imp)
	}
}

func TestResolveImpactSymmetricWhenOneHandleResolves(t *testing.T) {
	a := coreAndShield(t)
	const projectile scene.Handle = 77
	for _, h := range []scene.Handle{11, 12} {
		ab := a.ResolveImpact(h, projectile)
		ba := a.ResolveImpact(projectile, h)
		if ab != ba {
			t.Errorf("handle %d: %+v != %+v", h, ab, ba)
		}
	}
}

func TestApplyDamageFiresDestructionOnce(t *testing.T) {
	a := coreAndShield(t)
	shield, _ := a.Index("shield")
	fired := 0
	count := func(*Part) { fired++ }

	if !a.ApplyDamage(shield, 1, count) {
		t.Error("first lethal hit should report destruction")
	}
	if a.ApplyDamage(shield, 1, count) {
		t.Error("hit on destroyed part should not report destruction")
	}
	if fired != 1 {
		t.Errorf("destruction effect fired %d times, want 1", fired)
	}
	if a.Part(shield).Health != 0 {
		t.Errorf("destroyed part health changed to %v", a.Part(shield).Health)
	}
}

// Core shielded by a one-hit shield, assembly-level view.
func TestCoreShieldDamageSequence(t *testing.T) {
	a := coreAndShield(t)
	fired := 0
	count := func(*Part) { fired++ }

	imp := a.ResolveImpact(11, 0)
	if !imp.Found || !imp.Protected {
		t.Fatalf("core should be protected while shield lives, got %+v", imp)
	}
	core := imp.Part
	if a.Part(core).Health != 10 {
		t.Fatalf("core health = %v", a.Part(core).Health)
	}

	shield, _ := a.Index("shield")
	a.ApplyDamage(shield, 1, count)
	if fired != 1 {
		t.Fatalf("shield destruction fired %d", fired)
	}

	if imp := a.ResolveImpact(11, 0); imp.Protected {
		t.Fatal("core should be exposed after shield is destroyed")
	}
	if a.ApplyDamage(core, 5, count) || a.Part(core).Health != 5 || fired != 1 {
		t.Fatalf("after first hit: health %v fired %d", a.Part(core).Health, fired)
	}
	if !a.ApplyDamage(core, 5, count) || a.Part(core).Health != 0 || fired != 2 {
		t.Fatalf("after second hit: health %v fired %d", a.Part(core).Health, fired)
	}
	if !a.AllDestroyed() || a.Alive() != 0 {
		t.Error("every part should be destroyed")
	}
}
