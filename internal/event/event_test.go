package event

import "testing"

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) {
	r.got = append(r.got, e)
}

func TestDispatchRoutesByType(t *testing.T) {
	d := NewDispatcher()
	parts := &recorder{}
	enemies := &recorder{}
	d.Subscribe(PartDestroyed, parts)
	d.Subscribe(EnemyDestroyed, enemies)

	d.Dispatch(Event{Type: PartDestroyed, Data: PartEvent{Part: "core"}})
	d.Dispatch(Event{Type: ProjectileDiscarded})

	if len(parts.got) != 1 || len(enemies.got) != 0 {
		t.Fatalf("parts=%d enemies=%d", len(parts.got), len(enemies.got))
	}
	if pe := parts.got[0].Data.(PartEvent); pe.Part != "core" {
		t.Errorf("payload part = %q", pe.Part)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(PartHit, r)
	d.Unsubscribe(PartHit, r)
	d.Dispatch(Event{Type: PartHit})
	if len(r.got) != 0 {
		t.Errorf("listener still received %d events", len(r.got))
	}
}

func TestListenerFunc(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(EnemyDestroyed, ListenerFunc(func(Event) { calls++ }))
	d.Dispatch(Event{Type: EnemyDestroyed})
	d.Dispatch(Event{Type: EnemyDestroyed})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
