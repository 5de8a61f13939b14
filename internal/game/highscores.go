package game

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	highScoresObject   = "highscores"
	highScoresProperty = "entries"
	maxHighScores      = 10
)

// HighScoreEntry represents a single high score entry
type HighScoreEntry struct {
	Score          int       `yaml:"score"`
	Kills          uint64    `yaml:"kills"`
	PartsDestroyed uint64    `yaml:"parts_destroyed"`
	PlayTime       string    `yaml:"play_time"`
	Date           time.Time `yaml:"date"`
}

// HighScores holds the list of high score entries
type HighScores struct {
	Entries []HighScoreEntry `yaml:"entries"`
}

// HighScoreStore keeps the table in memory and persists it through gdata.
// With a nil manager nothing is written.
type HighScoreStore struct {
	manager *gdata.Manager
	scores  *HighScores
}

// NewHighScoreStore creates a store and loads any saved table
func NewHighScoreStore(manager *gdata.Manager) *HighScoreStore {
	s := &HighScoreStore{
		manager: manager,
		scores:  &HighScores{},
	}
	if err := s.Load(); err != nil {
		log.Printf("Warning: failed to load high scores: %v (starting empty)", err)
	}
	return s
}

// Load reads the saved table. A missing table is not an error.
func (s *HighScoreStore) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(highScoresObject, highScoresProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(highScoresObject, highScoresProperty)
	if err != nil {
		return fmt.Errorf("failed to load high scores: %w", err)
	}

	var scores HighScores
	if err := yaml.Unmarshal(data, &scores); err != nil {
		return fmt.Errorf("failed to unmarshal high scores: %w", err)
	}
	sortEntries(scores.Entries)
	s.scores = &scores
	return nil
}

// Save writes the table
func (s *HighScoreStore) Save() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.scores)
	if err != nil {
		return fmt.Errorf("failed to marshal high scores: %w", err)
	}
	if err := s.manager.SaveObjectProp(highScoresObject, highScoresProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// Record adds entry if it qualifies and saves the table. It returns the
// entry's rank, or 0 when it did not make the table.
func (s *HighScoreStore) Record(entry HighScoreEntry) (int, error) {
	if entry.Score <= 0 || !IsHighScore(s.scores, entry.Score) {
		return 0, nil
	}
	rank := GetRank(s.scores, entry.Score)
	AddHighScore(s.scores, entry)
	return rank, s.Save()
}

// Best returns the top score, 0 when the table is empty
func (s *HighScoreStore) Best() int {
	if len(s.scores.Entries) == 0 {
		return 0
	}
	return s.scores.Entries[0].Score
}

// Entries returns a copy of the table, best first
func (s *HighScoreStore) Entries() []HighScoreEntry {
	out := make([]HighScoreEntry, len(s.scores.Entries))
	copy(out, s.scores.Entries)
	return out
}

// AddHighScore adds a new entry to the high scores list, maintaining top 10
func AddHighScore(scores *HighScores, entry HighScoreEntry) {
	scores.Entries = append(scores.Entries, entry)
	sortEntries(scores.Entries)

	// Keep only top 10
	if len(scores.Entries) > maxHighScores {
		scores.Entries = scores.Entries[:maxHighScores]
	}
}

// IsHighScore checks if a score qualifies for the top 10
func IsHighScore(scores *HighScores, score int) bool {
	if len(scores.Entries) < maxHighScores {
		return true
	}
	return score > scores.Entries[len(scores.Entries)-1].Score
}

// GetRank returns the rank (1-based) that this score would achieve
func GetRank(scores *HighScores, score int) int {
	for i, entry := range scores.Entries {
		if score > entry.Score {
			return i + 1
		}
	}
	return len(scores.Entries) + 1
}

// sortEntries orders by score descending, keeping earlier entries first on ties
func sortEntries(entries []HighScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
