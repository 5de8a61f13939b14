package event

import "shmup/internal/scene"

// PartEvent is the payload of PartHit and PartDestroyed
type PartEvent struct {
	EnemyID string
	Part    string
	Health  float64
}

// EnemyEvent is the payload of EnemyDestroyed
type EnemyEvent struct {
	EnemyID string
	Kind    string
	X, Y    float64
	Score   int
	// DropPowerUp is the result of the enemy's drop roll
	DropPowerUp bool
}

// DiscardEvent is the payload of ProjectileDiscarded
type DiscardEvent struct {
	Object scene.Handle
	Reason string
}
